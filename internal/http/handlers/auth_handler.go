// Account HTTP handlers.
//
// This file exposes REST endpoints for account resources:
//   - POST /auth/register  (create an account)
//   - POST /auth/login     (exchange credentials for a bearer token)
//   - POST /auth/forgot    (check whether an email can be recovered)
//   - GET  /me             (current profile)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/services"
)

// AccountService defines account lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AccountService interface {
	// Register creates an account; the role is derived from the email domain.
	Register(ctx context.Context, email, username, password string) (*domain.Profile, error)
	// Login verifies credentials and returns the profile with a signed token.
	Login(ctx context.Context, email, password string) (*domain.Profile, string, error)
	// Forgot reports whether an account exists for the email.
	Forgot(ctx context.Context, email string) (bool, error)
	// Profile fetches an account by id.
	Profile(ctx context.Context, id string) (*domain.Profile, error)
}

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Email string `json:"email" binding:"required" example:"udin@gmail.com"`
	// Username optionally sets the display name; the email mailbox part is
	// used when empty.
	Username string `json:"username" example:"udin"`
	Password string `json:"password" binding:"required" example:"rahasia-123"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"udin@gmail.com"`
	Password string `json:"password" binding:"required" example:"rahasia-123"`
}

// ForgotRequest is the JSON payload for the recovery check.
type ForgotRequest struct {
	Email string `json:"email" binding:"required" example:"udin@gmail.com"`
}

// LoginResponse carries the issued bearer token and the account it belongs to.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Create an account
// @Description Registers a new account. Emails on the staff domain get the admin role.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
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

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns a signed bearer token plus the profile.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusOK, LoginResponse{Token: token, Profile: p})
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeLoginFailed, "invalid email or password")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// Forgot godoc
// @ID          forgotPassword
// @Summary     Check account recovery
// @Description Reports whether the email belongs to a registered account.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ForgotRequest  true  "Recovery payload"
//
// @Success     200  {object}  map[string]bool
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Email not registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/forgot [post]
func (h *Handlers) Forgot(c *gin.Context) {
	var req ForgotRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email required")
		return
	}

	exists, err := h.authSvc.Forgot(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if !exists {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "email not registered")
		return
	}
	ok(c, http.StatusOK, gin.H{"registered": true})
}

// Me godoc
// @ID          currentProfile
// @Summary     Current profile
// @Description Returns the profile of the authenticated account.
// @Tags        Auth
// @Produce     json
//
// @Security    BearerAuth
// @Success     200  {object}  domain.Profile
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /me [get]
func (h *Handlers) Me(c *gin.Context) {
	p, err := h.authSvc.Profile(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
		return
	}
	ok(c, http.StatusOK, p)
}
