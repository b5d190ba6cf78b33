// Handler wiring for the public API.
//
// This file defines the Handlers aggregate that groups every HTTP endpoint:
// accounts, mood check-ins, screenings, the anonymous board, education
// content, and the admin dashboard. Handlers are transport-thin: they
// validate input, call application services, and translate results into HTTP
// responses. Service dependencies are abstract interfaces (declared next to
// the handlers that consume them) so transport concerns stay separate from
// business logic.
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/articles"
	"github.com/mindgenz/go-mind-backend/internal/ws"
)

// Handlers groups the HTTP endpoints of the API.
//
// The db handle is used only for transport-level concerns that sit outside
// the services: ETag statistics and idempotency bookkeeping.
type Handlers struct {
	authSvc  AccountService
	moodSvc  MoodService
	scrSvc   ScreeningService
	boardSvc BoardService
	eduSvc   EducationService
	dashSvc  DashboardService
	catalog  *articles.Catalog
	hub      *ws.Hub
	db       *gorm.DB
	idemTTL  time.Duration
}

// New constructs a Handlers instance bound to the given services.
//
// hub may be nil (the realtime feed endpoint then responds 503) and db may be
// nil (ETag and idempotency bookkeeping are then skipped).
func New(
	db *gorm.DB,
	authSvc AccountService,
	moodSvc MoodService,
	scrSvc ScreeningService,
	boardSvc BoardService,
	eduSvc EducationService,
	dashSvc DashboardService,
	catalog *articles.Catalog,
	hub *ws.Hub,
	idemTTL time.Duration,
) *Handlers {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &Handlers{
		authSvc:  authSvc,
		moodSvc:  moodSvc,
		scrSvc:   scrSvc,
		boardSvc: boardSvc,
		eduSvc:   eduSvc,
		dashSvc:  dashSvc,
		catalog:  catalog,
		hub:      hub,
		db:       db,
		idemTTL:  idemTTL,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := c.GetHeader("X-User-ID"); h != "" {
			return h
		}
	}
	return "demo-user"
}
