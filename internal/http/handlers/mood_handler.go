// Mood check-in HTTP handlers.
//
// This file exposes REST endpoints for mood resources:
//   - POST   /moods       (save a check-in; idempotent via Idempotency-Key)
//   - GET    /moods       (history, newest first, ETag support)
//   - DELETE /moods/{id}  (remove one entry)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/http/middleware"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/services"
)

// MoodService defines mood check-in operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MoodService interface {
	// Save stores a check-in at the head of the user's history.
	Save(ctx context.Context, userID, mood, note string) (*domain.MoodRecord, error)
	// List returns the user's history, newest first.
	List(ctx context.Context, userID string) ([]domain.MoodRecord, error)
	// Delete removes one entry owned by userID.
	Delete(ctx context.Context, userID, id string) error
}

// SaveMoodRequest is the JSON payload for a mood check-in.
type SaveMoodRequest struct {
	// Mood is one of the fixed labels (Happy, Calm, Anxious, Sad, Angry, Neutral).
	Mood string `json:"mood" binding:"required" example:"Happy"`
	// Note optionally attaches free text to the check-in.
	Note string `json:"note" example:"hari yang cerah"`
}

// replayRecordID resolves a detected replay to the originally stored record
// id. Returns "" when the stored submission cannot be found.
func (h *Handlers) replayRecordID(ctx context.Context, uid string, c *gin.Context) string {
	if h.db == nil || !middleware.IsReplay(c) {
		return ""
	}
	key, hasKey := middleware.GetIdempotencyKey(c)
	if !hasKey {
		return ""
	}
	rec, err := repo.GetIdempotency(ctx, h.db, uid, key, time.Now().UTC())
	if err != nil {
		return ""
	}
	return rec.RecordID
}

// rememberSubmission persists the idempotency record for a fresh submission.
// Best effort: failures never surface to the client.
func (h *Handlers) rememberSubmission(ctx context.Context, uid string, c *gin.Context, recordID string) {
	if h.db == nil {
		return
	}
	key, hasKey := middleware.GetIdempotencyKey(c)
	if !hasKey {
		return
	}
	_, _ = repo.CreateIdempotency(ctx, h.db, uid, key, recordID, http.StatusCreated, h.idemTTL)
}

// SaveMood godoc
// @ID          saveMood
// @Summary     Save a mood check-in
// @Description Stores a mood entry for the current user. With an Idempotency-Key header, retried submissions return the original entry.
// @Tags        Moods
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false "Dedup key for safe retries"  example(mood-2026-08-31-a1)
// @Param       body             body    handlers.SaveMoodRequest  true  "Check-in payload"
//
// @Success     201  {object}  domain.MoodRecord
// @Success     200  {object}  domain.MoodRecord  "Replayed prior submission"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /moods [post]
func (h *Handlers) SaveMood(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	if recID := h.replayRecordID(ctx, uid, c); recID != "" {
		list, err := h.moodSvc.List(ctx, uid)
		if err == nil {
			for i := range list {
				if list[i].ID == recID {
					ok(c, http.StatusOK, list[i])
					return
				}
			}
		}
		// Stored record is gone (capped out); fall through and re-create.
	}

	var req SaveMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	rec, err := h.moodSvc.Save(ctx, uid, req.Mood, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMoodLabel) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	h.rememberSubmission(ctx, uid, c, rec.ID)
	ok(c, http.StatusCreated, rec)
}

// ListMoods godoc
// @ID          listMoods
// @Summary     Mood history
// @Description Returns the user's check-ins, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Moods
// @Produce     json
//
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {array}   domain.MoodRecord
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /moods [get]
func (h *Handlers) ListMoods(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check over the user's store rows (best effort).
	if h.db != nil {
		count, maxTS, err := repo.StoreStats(ctx, h.db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"store:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	list, err := h.moodSvc.List(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}

// DeleteMood godoc
// @ID          deleteMood
// @Summary     Delete a mood entry
// @Description Removes one check-in owned by the current user.
// @Tags        Moods
// @Produce     json
//
// @Security    BearerAuth
// @Param       id  path  string  true  "Mood entry ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Entry not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /moods/{id} [delete]
func (h *Handlers) DeleteMood(c *gin.Context) {
	err := h.moodSvc.Delete(c.Request.Context(), userID(c), c.Param("id"))
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrMoodNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "mood entry not found")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
