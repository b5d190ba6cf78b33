// Package services – AuthService
//
// This file implements the AuthService, which manages accounts and login
// sessions. It hashes passwords with bcrypt, derives the account role from
// the email domain (staff addresses become admins), and signs JWTs for the
// HTTP layer. Password reset is a deliberate stub: the product has no mail
// channel, so Forgot only confirms that the account exists.
//
// Service-level errors (e.g., ErrInvalidCredentials) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/auth"
	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/repo"
)

// MinPasswordLen is the minimum accepted password length in bytes.
const MinPasswordLen = 8

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyHash is a valid bcrypt digest of a throwaway string, compared against
// when the email is unknown so both failure paths cost about the same.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// ProfileRepo defines the repository contract required by AuthService.
type ProfileRepo interface {
	// CreateProfile inserts a new account row.
	CreateProfile(ctx context.Context, db *gorm.DB, email, username, passwordHash, role string) (*domain.Profile, error)

	// GetProfile fetches an account by id.
	GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error)

	// GetProfileByEmail fetches an account by email.
	GetProfileByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Profile, error)
}

// profileRepoFuncs adapts the package-level repo functions to ProfileRepo.
type profileRepoFuncs struct{}

func (profileRepoFuncs) CreateProfile(ctx context.Context, db *gorm.DB, email, username, passwordHash, role string) (*domain.Profile, error) {
	return repo.CreateProfile(ctx, db, email, username, passwordHash, role)
}
func (profileRepoFuncs) GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	return repo.GetProfile(ctx, db, id)
}
func (profileRepoFuncs) GetProfileByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Profile, error) {
	return repo.GetProfileByEmail(ctx, db, email)
}

// AuthService provides registration, login, and token issuance.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the profile repository used by this service.
	Repo ProfileRepo

	// JWTSecret signs issued tokens.
	JWTSecret string
	// JWTExpireHours is the token lifetime.
	JWTExpireHours int
	// AdminEmailDomain marks staff accounts: an email ending
	// "@<AdminEmailDomain>" registers with the admin role.
	AdminEmailDomain string

	// BcryptCost overrides the hash cost; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// NewAuthService constructs an AuthService bound to the default repository.
func NewAuthService(db *gorm.DB, secret string, expireHours int, adminDomain string) *AuthService {
	return &AuthService{
		DB:               db,
		Repo:             profileRepoFuncs{},
		JWTSecret:        secret,
		JWTExpireHours:   expireHours,
		AdminEmailDomain: strings.ToLower(adminDomain),
	}
}

// RoleForEmail derives the stored role from the email address.
func (s *AuthService) RoleForEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.AdminEmailDomain != "" && strings.HasSuffix(email, "@"+s.AdminEmailDomain) {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// Register creates a new account and returns it. The role is derived from
// the email domain; callers never choose it.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRE.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}
	username = strings.TrimSpace(username)
	if username == "" {
		// Default the display name to the mailbox part.
		username = email[:strings.Index(email, "@")]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return nil, err
	}

	p, err := s.Repo.CreateProfile(ctx, s.DB, email, username, string(hash), s.RoleForEmail(email))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	return p, err
}

// Login verifies the credentials and returns the account plus a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	p, err := s.Repo.GetProfileByEmail(ctx, s.DB, email)
	if errors.Is(err, repo.ErrNotFound) {
		// Burn a comparison anyway so timing does not reveal which half failed.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(p.ID, p.Role, s.JWTSecret, s.JWTExpireHours)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// Forgot reports whether an account exists for the email. There is no mail
// channel; the handler returns the same acknowledgement either way and this
// result only feeds the audit log.
func (s *AuthService) Forgot(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.GetProfileByEmail(ctx, s.DB, email)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Profile fetches an account by id, mapping missing rows to
// ErrProfileNotFound.
func (s *AuthService) Profile(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := s.Repo.GetProfile(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

func (s *AuthService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}
