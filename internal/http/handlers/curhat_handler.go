// Anonymous board HTTP handlers.
//
// This file exposes the public board (curhat) endpoints:
//   - GET  /curhats     (day-scoped feed, ETag support)
//   - POST /curhats     (publish a message; no author is ever stored)
//   - GET  /ws/curhats  (websocket feed of newly published messages)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/services"
	"github.com/mindgenz/go-mind-backend/internal/ws"
)

// BoardService defines anonymous board operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BoardService interface {
	// Post publishes an anonymous message to the board.
	Post(ctx context.Context, content, mood string) (*domain.Curhat, error)
	// ListByDate returns the messages of one UTC day, newest first.
	// A zero day means today.
	ListByDate(ctx context.Context, day time.Time) ([]domain.Curhat, error)
}

// PostCurhatRequest is the JSON payload for publishing a board message.
type PostCurhatRequest struct {
	Content string `json:"content" binding:"required" example:"hari ini berat sekali"`
	// Mood is one of the board labels (Sedih, Netral, Baik, Senang).
	Mood string `json:"mood" binding:"required" example:"Sedih"`
}

// feedUpgrader upgrades board feed requests. Origin checking is delegated to
// the CORS middleware in front of the router.
var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// curhatDay parses the optional ?date=YYYY-MM-DD query parameter. The zero
// time selects today.
func curhatDay(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}

// ListCurhats godoc
// @ID          listCurhats
// @Summary     Board feed for a day
// @Description Returns the anonymous messages posted on one UTC day, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Curhats
// @Produce     json
//
// @Param       date           query   string  false "UTC day (YYYY-MM-DD); defaults to today"  example(2026-08-31)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {array}   domain.Curhat
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /curhats [get]
func (h *Handlers) ListCurhats(c *gin.Context) {
	ctx := c.Request.Context()

	day, err := curhatDay(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}

	// ETag pre-check (best effort). The stats query needs a concrete day.
	statsDay := day
	if statsDay.IsZero() {
		statsDay = time.Now().UTC()
	}
	if h.db != nil {
		count, maxTS, err := repo.CurhatsStats(ctx, h.db, statsDay)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"curhats:%s:%d:%d"`, statsDay.Format("2006-01-02"), count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	list, err := h.boardSvc.ListByDate(ctx, day)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}

// PostCurhat godoc
// @ID          postCurhat
// @Summary     Publish a board message
// @Description Publishes an anonymous message. No author reference is stored or broadcast.
// @Tags        Curhats
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       body  body  handlers.PostCurhatRequest  true  "Message payload"
//
// @Success     201  {object}  domain.Curhat
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /curhats [post]
func (h *Handlers) PostCurhat(c *gin.Context) {
	var req PostCurhatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	cur, err := h.boardSvc.Post(c.Request.Context(), req.Content, req.Mood)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, cur)
	case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrInvalidBoardMood):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}

// CurhatFeed godoc
// @ID          curhatFeed
// @Summary     Realtime board feed
// @Description Upgrades to a websocket that receives a "curhat.insert" event per published message. Clients deduplicate by record id.
// @Tags        Curhats
//
// @Success     101  {string}  string "Switching Protocols"
// @Failure     503  {object}  handlers.ErrorResponse  "Feed unavailable"
// @Router      /ws/curhats [get]
func (h *Handlers) CurhatFeed(c *gin.Context) {
	if h.hub == nil {
		fail(c, http.StatusServiceUnavailable, ErrCodeInternal, "feed unavailable")
		return
	}
	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		return
	}

	client := &ws.Client{Conn: conn}
	h.hub.Register(client)

	// The feed is write-only; the read loop only detects disconnects.
	go func() {
		defer func() {
			h.hub.Unregister(client)
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
