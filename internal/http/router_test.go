package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/articles"
	"github.com/mindgenz/go-mind-backend/internal/config"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/ws"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := repo.OpenSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	const fixture = `[
	  {"id": 1, "title": "Mengenal Kecemasan", "desc": "d", "category": "Kecemasan", "img": "", "content": "Satu. Dua. Tiga. Empat."},
	  {"id": 2, "title": "Tidur Cukup", "desc": "d", "category": "Gaya Hidup", "img": "", "content": "Isi."}
	]`
	artPath := filepath.Join(dir, "articles.json")
	if err := os.WriteFile(artPath, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	catalog, err := articles.Load(artPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     100,
		RateBurst:   100,
	}
	cfg.Auth.JWTSecret = "router-test-secret"
	cfg.Auth.JWTExpireHours = 1
	cfg.Auth.AdminEmailDomain = "mindgenz.com"
	cfg.OTEL.ServiceName = "go-mind-backend-test"

	r := gin.New()
	RegisterRoutes(r, db, catalog, ws.NewHub(), cfg)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// register + login, returning the bearer token.
func loginAs(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "password1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "password1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response: %v %s", err, w.Body.String())
	}
	return resp.Token
}

func TestHealthAndFallbacks(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error envelope: %v", err)
	}
	if body["code"] != "not_found" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestAuthGating(t *testing.T) {
	r := newTestRouter(t)

	// Protected routes reject anonymous requests.
	if w := doJSON(t, r, http.MethodGet, "/api/v1/moods", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous moods: %d", w.Code)
	}

	// Admin routes reject regular users.
	userTok := loginAs(t, r, "udin@gmail.com")
	if w := doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", userTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("user on admin route: %d", w.Code)
	}

	// Staff-domain accounts get through.
	adminTok := loginAs(t, r, "staff@mindgenz.com")
	if w := doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard", adminTok, nil); w.Code != http.StatusOK {
		t.Fatalf("admin dashboard: %d %s", w.Code, w.Body.String())
	}
}

func TestMoodRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	tok := loginAs(t, r, "udin@gmail.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/moods", tok, gin.H{"mood": "Happy", "note": "cerah"})
	if w.Code != http.StatusCreated {
		t.Fatalf("save mood: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/moods", tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list moods: %d", w.Code)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("list moods: missing ETag")
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list body: %v %s", err, w.Body.String())
	}
	if list[0]["mood"] != "Happy" {
		t.Fatalf("mood = %v", list[0]["mood"])
	}
}

func TestMoodIdempotentReplay(t *testing.T) {
	r := newTestRouter(t)
	tok := loginAs(t, r, "udin@gmail.com")

	post := func() *httptest.ResponseRecorder {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(gin.H{"mood": "Calm"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/moods", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tok)
		req.Header.Set("Idempotency-Key", "mood-key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := post()
	if first.Code != http.StatusCreated {
		t.Fatalf("first post: %d %s", first.Code, first.Body.String())
	}
	second := post()
	if second.Code != http.StatusOK {
		t.Fatalf("replay: %d %s", second.Code, second.Body.String())
	}

	var a, b map[string]any
	_ = json.Unmarshal(first.Body.Bytes(), &a)
	_ = json.Unmarshal(second.Body.Bytes(), &b)
	if a["id"] != b["id"] {
		t.Fatalf("replay returned a different record: %v vs %v", a["id"], b["id"])
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/moods", tok, nil)
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("replay created a duplicate: %d entries", len(list))
	}
}

func TestScreeningFlow(t *testing.T) {
	r := newTestRouter(t)
	tok := loginAs(t, r, "udin@gmail.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/screenings/questions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("questions: %d", w.Code)
	}

	answers := make([]bool, 10)
	for i := 0; i < 4; i++ {
		answers[i] = true
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/screenings", tok, gin.H{"answers": answers})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Record struct {
			Score int `json:"score"`
		} `json:"record"`
		Result struct {
			Band string `json:"band"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("submit body: %v", err)
	}
	if resp.Record.Score != 4 || resp.Result.Band == "" {
		t.Fatalf("submit response: %+v", resp)
	}

	// Missing answers are rejected.
	w = doJSON(t, r, http.MethodPost, "/api/v1/screenings", tok, gin.H{"answers": []bool{true, false}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short answers: %d", w.Code)
	}
}

func TestCurhatBoard(t *testing.T) {
	r := newTestRouter(t)
	tok := loginAs(t, r, "udin@gmail.com")

	// Posting requires auth.
	if w := doJSON(t, r, http.MethodPost, "/api/v1/curhats", "", gin.H{"content": "x", "mood": "Sedih"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous post: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/curhats", tok, gin.H{"content": "hari berat", "mood": "Sedih"})
	if w.Code != http.StatusCreated {
		t.Fatalf("post: %d %s", w.Code, w.Body.String())
	}
	var posted map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &posted)
	if _, hasUser := posted["user_id"]; hasUser {
		t.Fatal("board message must not carry a user reference")
	}

	// Reading is public.
	w = doJSON(t, r, http.MethodGet, "/api/v1/curhats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list body: %v %s", err, w.Body.String())
	}

	// Bad date query.
	if w := doJSON(t, r, http.MethodGet, "/api/v1/curhats?date=31-08-2026", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: %d", w.Code)
	}
}

func TestArticlesPublicSurface(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/articles?category=Kecemasan", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("articles: %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("filtered list: %v %s", err, w.Body.String())
	}

	if w := doJSON(t, r, http.MethodGet, "/api/v1/articles/categories", "", nil); w.Code != http.StatusOK {
		t.Fatalf("categories: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/articles/1/summary", "", nil); w.Code != http.StatusOK {
		t.Fatalf("summary: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/articles/99", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown article: %d", w.Code)
	}
}

func TestDashboardExport(t *testing.T) {
	r := newTestRouter(t)
	adminTok := loginAs(t, r, "staff@mindgenz.com")

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/dashboard/export", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Fatal("missing Content-Disposition")
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty workbook body")
	}
}

// xlsxContentType mirrors the handler constant without exporting it.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
