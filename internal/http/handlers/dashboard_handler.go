// Admin dashboard HTTP handlers.
//
// This file exposes the staff-only analytics endpoints:
//   - GET  /admin/dashboard           (aggregated analytics for a month)
//   - GET  /admin/dashboard/export    (xlsx snapshot download)
//   - POST /admin/dashboard/reviewed  (mark a high-risk screening handled)
//   - POST /admin/users               (create an account on behalf of a user)
package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/export"
	"github.com/mindgenz/go-mind-backend/internal/services"
)

// xlsxContentType is the media type of an Office Open XML workbook.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardService defines admin analytics operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type DashboardService interface {
	// Summarize aggregates analytics across all accounts for a month.
	Summarize(ctx context.Context, monthISO string) (*services.Summary, error)
	// MarkReviewed flags a high-risk screening as handled by staff.
	MarkReviewed(ctx context.Context, userID, recordID string) error
	// Snapshot flattens all data for the xlsx export.
	Snapshot(ctx context.Context) (*export.Snapshot, error)
}

// MarkReviewedRequest is the JSON payload for flagging a high-risk screening.
type MarkReviewedRequest struct {
	UserID   string `json:"user_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	RecordID string `json:"record_id" binding:"required" example:"8b8f0f52-93dc-4a16-9a4f-2f9f2c3f9a10"`
}

// DashboardSummary godoc
// @ID          dashboardSummary
// @Summary     Analytics summary
// @Description Returns aggregated analytics (totals, severity distribution, weekly moods, board heatmap, high-risk triage list) for one month.
// @Tags        Dashboard
// @Produce     json
//
// @Security    BearerAuth
// @Param       month  query  string  false "Month (YYYY-MM); defaults to the current month"  example(2026-08)
//
// @Success     200  {object}  services.Summary
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/dashboard [get]
func (h *Handlers) DashboardSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "month must be YYYY-MM")
		return
	}

	sum, err := h.dashSvc.Summarize(c.Request.Context(), month)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sum)
}

// DashboardExport godoc
// @ID          dashboardExport
// @Summary     Export analytics workbook
// @Description Downloads an xlsx snapshot of screenings, moods, reading logs, and board messages.
// @Tags        Dashboard
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
// @Security    BearerAuth
// @Success     200  {file}    file
// @Header      200  {string}  Content-Disposition  "attachment; filename=mindgenz-analytics-YYYY-MM-DD.xlsx"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     500  {object}  handlers.ErrorResponse  "Export failed"
// @Router      /admin/dashboard/export [get]
func (h *Handlers) DashboardExport(c *gin.Context) {
	snap, err := h.dashSvc.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, *snap); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now().UTC())+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// MarkReviewed godoc
// @ID          markReviewed
// @Summary     Mark a screening reviewed
// @Description Flags a high-risk screening as handled; the triage list keeps the entry with reviewed=true.
// @Tags        Dashboard
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       body  body  handlers.MarkReviewedRequest  true  "Screening reference"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/dashboard/reviewed [post]
func (h *Handlers) MarkReviewed(c *gin.Context) {
	var req MarkReviewedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.dashSvc.MarkReviewed(c.Request.Context(), req.UserID, req.RecordID); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create an account (staff)
// @Description Registers an account on behalf of a user; the role is derived from the email domain.
// @Tags        Dashboard
// @Accept      json
// @Produce     json
//
// @Security    BearerAuth
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Admin access required"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, p)
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, "email already registered")
	case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
	}
}
