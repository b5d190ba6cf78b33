// Command server runs the MindGenZ companion backend: mood check-ins,
// self-screenings, the anonymous curhat board with its realtime feed,
// education content, and the staff analytics dashboard.
//
// Configuration is environment-driven (a local .env file is honored in
// development). The process wires SQLite persistence, the education catalog,
// the websocket hub, OpenTelemetry tracing, and the Gin router, then serves
// HTTP until SIGINT/SIGTERM and shuts down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/mindgenz/go-mind-backend/internal/articles"
	"github.com/mindgenz/go-mind-backend/internal/config"
	httpapi "github.com/mindgenz/go-mind-backend/internal/http"
	"github.com/mindgenz/go-mind-backend/internal/observability"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/sysutil"
	"github.com/mindgenz/go-mind-backend/internal/ws"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Local development convenience; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging posture before anything else can emit.
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if sysutil.IsTruthy(os.Getenv("LOG_CALLER")) {
		log.Logger = log.With().Caller().Logger()
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless enabled).
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Persistence.
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if cfg.OTEL.Enabled {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// Education catalog (read-only, loaded once).
	catalog, err := articles.Load(cfg.ArticlesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ArticlesPath).Msg("load articles failed")
	}
	log.Info().Int("articles", len(catalog.All())).Msg("catalog loaded")

	// Realtime board feed.
	hub := ws.NewHub()

	r := gin.New()
	// Compression for API responses; the websocket upgrade path must stay raw.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{cfg.APIBasePath + "/ws"})))
	httpapi.RegisterRoutes(r, db, catalog, hub, cfg)

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              ":" + sysutil.FirstNonEmpty(cfg.Port, "8080"),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
