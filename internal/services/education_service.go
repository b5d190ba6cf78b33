// Package services – EducationService
//
// This file implements the EducationService, which layers per-user state on
// top of the static article catalog: favorite toggles, comments, and reading
// time logs. All three live in the key-value store under their own keys.
// Favorite listings filter out ids that no longer resolve in the catalog, so
// a trimmed catalog never breaks the favorites page.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mindgenz/go-mind-backend/internal/articles"
	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// EducationService provides favorites, comments, and read logging over the
// article catalog.
type EducationService struct {
	// Store is the per-user key-value backend.
	Store Store
	// Catalog is the loaded education content.
	Catalog *articles.Catalog
}

// NewEducationService constructs an EducationService.
func NewEducationService(st Store, cat *articles.Catalog) *EducationService {
	return &EducationService{Store: st, Catalog: cat}
}

// ToggleFavorite flips the favorite state of an article and reports the new
// state (true = now favorited). Unknown article ids are rejected.
func (s *EducationService) ToggleFavorite(ctx context.Context, userID string, articleID int) (bool, error) {
	if _, err := s.Catalog.Get(articleID); errors.Is(err, articles.ErrNotFound) {
		return false, ErrArticleNotFound
	}

	var favs []int
	if err := s.Store.Read(ctx, userID, domain.KeyFavorites, &favs); err != nil {
		return false, err
	}

	kept := favs[:0]
	removed := false
	for _, id := range favs {
		if id == articleID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, articleID)
	}
	if err := s.Store.Write(ctx, userID, domain.KeyFavorites, kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// Favorites returns the user's favorited articles in toggle order. Ids that
// no longer resolve in the catalog are silently skipped.
func (s *EducationService) Favorites(ctx context.Context, userID string) ([]articles.Article, error) {
	var favs []int
	if err := s.Store.Read(ctx, userID, domain.KeyFavorites, &favs); err != nil {
		return nil, err
	}

	out := []articles.Article{}
	for _, id := range favs {
		a, err := s.Catalog.Get(id)
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// AddComment stores a comment under an article, newest first.
func (s *EducationService) AddComment(ctx context.Context, userID string, articleID int, text string) (*domain.Comment, error) {
	if _, err := s.Catalog.Get(articleID); errors.Is(err, articles.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	var all map[int][]domain.Comment
	if err := s.Store.Read(ctx, userID, domain.KeyComments, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = make(map[int][]domain.Comment)
	}

	c := domain.Comment{Text: text, CreatedAt: time.Now().UTC()}
	all[articleID] = append([]domain.Comment{c}, all[articleID]...)
	if err := s.Store.Write(ctx, userID, domain.KeyComments, all); err != nil {
		return nil, err
	}
	return &c, nil
}

// Comments returns the user's comments under an article, newest first.
func (s *EducationService) Comments(ctx context.Context, userID string, articleID int) ([]domain.Comment, error) {
	if _, err := s.Catalog.Get(articleID); errors.Is(err, articles.ErrNotFound) {
		return nil, ErrArticleNotFound
	}

	var all map[int][]domain.Comment
	if err := s.Store.Read(ctx, userID, domain.KeyComments, &all); err != nil {
		return nil, err
	}
	list := all[articleID]
	if list == nil {
		list = []domain.Comment{}
	}
	return list, nil
}

// LogRead appends a reading session to the user's read log.
func (s *EducationService) LogRead(ctx context.Context, userID string, articleID, seconds int) (*domain.ReadLog, error) {
	if _, err := s.Catalog.Get(articleID); errors.Is(err, articles.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if seconds <= 0 {
		return nil, ErrInvalidReadSeconds
	}

	var logRows []domain.ReadLog
	if err := s.Store.Read(ctx, userID, domain.KeyReadLog, &logRows); err != nil {
		return nil, err
	}

	entry := domain.ReadLog{ArticleID: articleID, Seconds: seconds, At: time.Now().UTC()}
	logRows = append(logRows, entry)
	if err := s.Store.Write(ctx, userID, domain.KeyReadLog, logRows); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ReadLogs returns the user's reading sessions in append order.
func (s *EducationService) ReadLogs(ctx context.Context, userID string) ([]domain.ReadLog, error) {
	var logRows []domain.ReadLog
	if err := s.Store.Read(ctx, userID, domain.KeyReadLog, &logRows); err != nil {
		return nil, err
	}
	if logRows == nil {
		logRows = []domain.ReadLog{}
	}
	return logRows, nil
}
