package articles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fixtureJSON = `[
  {"id": 1, "title": "Mengenal Kecemasan", "desc": "Teknik meredakan cemas.", "category": "Kecemasan", "img": "/img/1.jpg",
   "content": "Kecemasan adalah respons alami. Dalam kadar ringan ia membantu. Masalah muncul saat berlebihan. Bicarakan dengan konselor bila berlanjut."},
  {"id": 2, "title": "Tidur Berkualitas", "desc": "Tidur dan suasana hati.", "category": "Gaya Hidup", "img": "/img/2.jpg",
   "content": "Tidur memengaruhi emosi. Jadwal tetap membantu."},
  {"id": 3, "title": "Burnout Akademik", "desc": "Tanda dan pemulihan.", "category": "Stres", "img": "/img/3.jpg",
   "content": "Burnout berbeda dari capek biasa."},
  {"id": 4, "title": "Journaling Harian", "desc": "Menulis untuk meredakan pikiran.", "category": "Gaya Hidup", "img": "/img/4.jpg",
   "content": "Menulis jurnal memindahkan pikiran ke kertas."}
]`

func loadFixture(t *testing.T) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.json")
	if err := os.WriteFile(path, []byte(fixtureJSON), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed JSON: want error")
	}
}

func TestGet(t *testing.T) {
	c := loadFixture(t)

	a, err := c.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if a.Title != "Tidur Berkualitas" || a.Category != "Gaya Hidup" {
		t.Errorf("unexpected article: %+v", a)
	}

	if _, err := c.Get(99); err != ErrNotFound {
		t.Errorf("Get(99) err = %v; want ErrNotFound", err)
	}
}

func TestAll_PreservesFileOrder(t *testing.T) {
	c := loadFixture(t)
	all := c.All()
	if len(all) != 4 {
		t.Fatalf("len = %d; want 4", len(all))
	}
	for i, want := range []int{1, 2, 3, 4} {
		if all[i].ID != want {
			t.Errorf("all[%d].ID = %d; want %d", i, all[i].ID, want)
		}
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	c := loadFixture(t)
	got := c.Categories()
	want := []string{"Kecemasan", "Gaya Hidup", "Stres"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestList_EmptyQueryFiltersByCategory(t *testing.T) {
	c := loadFixture(t)

	if got := c.List("", ""); len(got) != 4 {
		t.Errorf("no filter: len = %d; want 4", len(got))
	}

	got := c.List("", "Gaya Hidup")
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 4 {
		t.Errorf("category filter = %v; want ids [2 4]", got)
	}
}

func TestList_QueryRanksMatches(t *testing.T) {
	c := loadFixture(t)

	got := c.List("kecemasan konselor", "")
	if len(got) == 0 || got[0].ID != 1 {
		t.Fatalf("query results = %v; want article 1 first", got)
	}
}

func TestList_SubstringFallback(t *testing.T) {
	c := loadFixture(t)

	// "burn" is not a full token so the index misses it; the substring
	// fallback on the title must still surface the article.
	got := c.List("burn", "")
	found := false
	for _, a := range got {
		if a.ID == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("substring fallback missed article 3: %v", got)
	}
}

func TestList_QueryRespectsCategory(t *testing.T) {
	c := loadFixture(t)

	for _, a := range c.List("tidur jurnal kecemasan", "Gaya Hidup") {
		if a.Category != "Gaya Hidup" {
			t.Errorf("result %d leaked category %q", a.ID, a.Category)
		}
	}
}

func TestRelated(t *testing.T) {
	c := loadFixture(t)

	got, err := c.Related(2, 3)
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if len(got) != 1 || got[0].ID != 4 {
		t.Errorf("related to 2 = %v; want [4]", got)
	}

	if _, err := c.Related(99, 3); err != ErrNotFound {
		t.Errorf("Related(99) err = %v; want ErrNotFound", err)
	}

	// Non-positive limit falls back to the default of three.
	if _, err := c.Related(2, 0); err != nil {
		t.Errorf("Related with limit 0: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	c := loadFixture(t)

	sum, err := c.Summarize(1)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.HasSuffix(sum, "…") {
		t.Errorf("long body should be truncated with ellipsis: %q", sum)
	}
	if strings.Contains(sum, "konselor") {
		t.Errorf("fourth sentence leaked into summary: %q", sum)
	}

	// Three or fewer sentences come back verbatim.
	sum, err = c.Summarize(2)
	if err != nil {
		t.Fatalf("Summarize(2): %v", err)
	}
	if strings.HasSuffix(sum, "…") {
		t.Errorf("short body should not be truncated: %q", sum)
	}

	if _, err := c.Summarize(99); err != ErrNotFound {
		t.Errorf("Summarize(99) err = %v; want ErrNotFound", err)
	}
}
