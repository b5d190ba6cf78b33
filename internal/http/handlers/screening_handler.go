// Screening HTTP handlers.
//
// This file exposes REST endpoints for the self-screening questionnaire:
//   - GET  /screenings/questions  (the fixed question list)
//   - POST /screenings            (submit answers; idempotent via Idempotency-Key)
//   - GET  /screenings            (history, newest first)
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/screening"
)

// ScreeningService defines questionnaire operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ScreeningService interface {
	// Submit scores the answers and stores the record at the head of the
	// user's history.
	Submit(ctx context.Context, userID string, answers []*bool) (*domain.ScreeningRecord, *screening.Result, error)
	// List returns the user's history, newest first.
	List(ctx context.Context, userID string) ([]domain.ScreeningRecord, error)
}

// SubmitScreeningRequest is the JSON payload for a questionnaire submission.
// Every question must carry an explicit true/false; null or missing answers
// are rejected.
type SubmitScreeningRequest struct {
	Answers []*bool `json:"answers" binding:"required"`
}

// SubmitScreeningResponse pairs the stored record with its classification.
type SubmitScreeningResponse struct {
	Record *domain.ScreeningRecord `json:"record"`
	Result *screening.Result       `json:"result"`
}

// ScreeningQuestions godoc
// @ID          screeningQuestions
// @Summary     Questionnaire
// @Description Returns the fixed yes/no question list in submission order.
// @Tags        Screenings
// @Produce     json
//
// @Success     200  {object}  map[string][]string
// @Router      /screenings/questions [get]
func (h *Handlers) ScreeningQuestions(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"questions": screening.Questions})
}

// SubmitScreening godoc
// @ID          submitScreening
// @Summary     Submit a screening
// @Description Scores the answers, stores the record, and returns the severity classification. With an Idempotency-Key header, retried submissions return the original record.
// @Tags        Screenings
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string  false "Dedup key for safe retries"  example(scr-2026-08-31-a1)
// @Param       body             body    handlers.SubmitScreeningRequest  true  "Answers, one per question"
//
// @Success     201  {object}  handlers.SubmitScreeningResponse
// @Success     200  {object}  handlers.SubmitScreeningResponse  "Replayed prior submission"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /screenings [post]
func (h *Handlers) SubmitScreening(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	if recID := h.replayRecordID(ctx, uid, c); recID != "" {
		list, err := h.scrSvc.List(ctx, uid)
		if err == nil {
			for i := range list {
				if list[i].ID == recID {
					result := screening.Classify(list[i].Score)
					ok(c, http.StatusOK, SubmitScreeningResponse{Record: &list[i], Result: &result})
					return
				}
			}
		}
		// Stored record is gone (capped out); fall through and re-create.
	}

	var req SubmitScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	rec, result, err := h.scrSvc.Submit(ctx, uid, req.Answers)
	if err != nil {
		if errors.Is(err, screening.ErrUnanswered) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	h.rememberSubmission(ctx, uid, c, rec.ID)
	ok(c, http.StatusCreated, SubmitScreeningResponse{Record: rec, Result: result})
}

// ListScreenings godoc
// @ID          listScreenings
// @Summary     Screening history
// @Description Returns the user's screening records, newest first.
// @Tags        Screenings
// @Produce     json
//
// @Security    BearerAuth
// @Success     200  {array}   domain.ScreeningRecord
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /screenings [get]
func (h *Handlers) ListScreenings(c *gin.Context) {
	list, err := h.scrSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}
