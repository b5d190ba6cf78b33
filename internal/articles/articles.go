// Package articles serves the static education content. The catalog is a
// read-only JSON resource loaded once at startup; there is no authoring
// surface. Lookups tolerate dangling references: an unknown id is reported
// as not found and silently filtered from favorite listings by the caller.
package articles

import (
	"encoding/json"
	"errors"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mindgenz/go-mind-backend/internal/search"
)

// fold performs Unicode case folding for the substring fallback in List.
var fold = cases.Fold()

// ErrNotFound is returned when an article id is not in the catalog.
var ErrNotFound = errors.New("article not found")

// Article is one education entry from the static catalog.
type Article struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Category string `json:"category"`
	Img      string `json:"img"`
	Content  string `json:"content"`
}

// Catalog holds the loaded articles plus a token index over their text.
// It is immutable after Load and safe for concurrent use.
type Catalog struct {
	list []Article
	byID map[int]Article
	idx  search.Index
}

// Load reads the article catalog from the JSON file at path. Order in the
// file is preserved for listings.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []Article
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}

	byID := make(map[int]Article, len(list))
	docs := make([]search.Doc, 0, len(list))
	for _, a := range list {
		byID[a.ID] = a
		docs = append(docs, search.Doc{
			ID:   a.ID,
			Text: a.Title + " " + a.Desc + " " + a.Content,
		})
	}
	return &Catalog{
		list: list,
		byID: byID,
		idx:  search.NewIndex(docs),
	}, nil
}

// All returns the catalog in file order.
func (c *Catalog) All() []Article { return c.list }

// Get returns the article with the given id or ErrNotFound.
func (c *Catalog) Get(id int) (Article, error) {
	a, ok := c.byID[id]
	if !ok {
		return Article{}, ErrNotFound
	}
	return a, nil
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range c.list {
		if _, ok := seen[a.Category]; ok {
			continue
		}
		seen[a.Category] = struct{}{}
		out = append(out, a.Category)
	}
	return out
}

// List filters the catalog by free-text query and category. An empty query
// keeps file order; a non-empty query ranks by the token index and falls
// back to a case-insensitive substring match on title and teaser so that
// single-letter searches still behave like the original list view. An empty
// category means all categories.
func (c *Catalog) List(query, category string) []Article {
	match := func(a Article) bool {
		return category == "" || a.Category == category
	}

	q := strings.TrimSpace(query)
	if q == "" {
		var out []Article
		for _, a := range c.list {
			if match(a) {
				out = append(out, a)
			}
		}
		return out
	}

	picked := make(map[int]struct{})
	var out []Article
	for _, r := range c.idx.TopK(q, len(c.list)) {
		a := c.byID[r.ID]
		if match(a) {
			out = append(out, a)
			picked[a.ID] = struct{}{}
		}
	}

	low := fold.String(q)
	for _, a := range c.list {
		if _, ok := picked[a.ID]; ok {
			continue
		}
		if !match(a) {
			continue
		}
		if strings.Contains(fold.String(a.Title), low) ||
			strings.Contains(fold.String(a.Desc), low) {
			out = append(out, a)
		}
	}
	return out
}

// Related returns up to limit articles sharing the category of id, excluding
// id itself, in file order. An unknown id yields ErrNotFound.
func (c *Catalog) Related(id, limit int) ([]Article, error) {
	a, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if limit <= 0 {
		limit = 3
	}
	var out []Article
	for _, other := range c.list {
		if other.ID == a.ID || other.Category != a.Category {
			continue
		}
		out = append(out, other)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// sentenceEndRE splits article text into sentences on ., ? or ! followed by
// whitespace.
var sentenceEndRE = regexp.MustCompile(`[.?!]\s+`)

// Summarize returns the first three sentences of the article body, with an
// ellipsis when the body continues. This mirrors the product's lightweight
// "summary" feature; it is a truncation, not a model call.
func (c *Catalog) Summarize(id int) (string, error) {
	a, ok := c.byID[id]
	if !ok {
		return "", ErrNotFound
	}
	if strings.TrimSpace(a.Content) == "" {
		return "", nil
	}
	sentences := sentenceEndRE.Split(a.Content, -1)
	if len(sentences) <= 3 {
		return a.Content, nil
	}
	return strings.Join(sentences[:3], ". ") + "…", nil
}
