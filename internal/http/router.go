// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/articles"
	"github.com/mindgenz/go-mind-backend/internal/config"
	"github.com/mindgenz/go-mind-backend/internal/http/handlers"
	"github.com/mindgenz/go-mind-backend/internal/http/middleware"
	"github.com/mindgenz/go-mind-backend/internal/notify"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/services"
	"github.com/mindgenz/go-mind-backend/internal/store"
	"github.com/mindgenz/go-mind-backend/internal/ws"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Optional auth (identity for rate limiting and idempotency keys)
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, catalog *articles.Catalog, hub *ws.Hub, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction. Board content never appears in
	// logs; only request metadata does.
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Best-effort identity for the cross-cutting middleware below. Routes
	// that require auth add the hard variant themselves.
	r.Use(middleware.OptionalAuth(cfg.Auth.JWTSecret))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← db/store/catalog/hub
	st := store.New(db)
	gate := notify.NewGate(st, notify.LogAlerter{})

	authSvc := services.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.JWTExpireHours, cfg.Auth.AdminEmailDomain)
	moodSvc := services.NewMoodService(st)
	scrSvc := services.NewScreeningService(st, gate)
	boardSvc := services.NewCurhatService(db, hub)
	eduSvc := services.NewEducationService(st, catalog)
	dashSvc := services.NewDashboardService(db, st, gate)

	h := handlers.New(db, authSvc, moodSvc, scrSvc, boardSvc, eduSvc, dashSvc, catalog, hub, cfg.IdempotencyTTL)

	requireAuth := middleware.Auth(cfg.Auth.JWTSecret)
	requireAdmin := middleware.RequireAdmin()

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Accounts
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/forgot", h.Forgot)
		api.GET("/me", requireAuth, h.Me)

		// Mood check-ins
		api.POST("/moods", requireAuth, h.SaveMood)
		api.GET("/moods", requireAuth, h.ListMoods)
		api.DELETE("/moods/:id", requireAuth, h.DeleteMood)

		// Screenings
		api.GET("/screenings/questions", h.ScreeningQuestions)
		api.POST("/screenings", requireAuth, h.SubmitScreening)
		api.GET("/screenings", requireAuth, h.ListScreenings)

		// Anonymous board
		api.GET("/curhats", h.ListCurhats)
		api.POST("/curhats", requireAuth, h.PostCurhat)
		api.GET("/ws/curhats", h.CurhatFeed)

		// Education content
		api.GET("/articles", h.ListArticles)
		api.GET("/articles/categories", h.ArticleCategories)
		api.GET("/articles/:id", h.GetArticle)
		api.GET("/articles/:id/related", h.RelatedArticles)
		api.GET("/articles/:id/summary", h.ArticleSummary)
		api.PUT("/articles/:id/favorite", requireAuth, h.ToggleFavorite)
		api.GET("/favorites", requireAuth, h.ListFavorites)
		api.POST("/articles/:id/comments", requireAuth, h.AddComment)
		api.GET("/articles/:id/comments", requireAuth, h.ListComments)
		api.POST("/articles/:id/reads", requireAuth, h.LogRead)
		api.GET("/reads", requireAuth, h.ListReads)

		// Admin dashboard
		admin := api.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/dashboard", h.DashboardSummary)
			admin.GET("/dashboard/export", h.DashboardExport)
			admin.POST("/dashboard/reviewed", h.MarkReviewed)
			admin.POST("/users", h.CreateUser)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
