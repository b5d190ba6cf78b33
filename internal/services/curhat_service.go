// Package services – CurhatService
//
// This file implements the CurhatService for the anonymous message board.
// Posts are insert-only, carry no author reference, and are pushed to all
// connected feed subscribers after the row is committed. Feed delivery is
// best-effort: a broadcast failure never rolls back the insert, and
// subscribers deduplicate by record id.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/ws"
)

// BoardMoods is the fixed set of accepted board mood labels.
var BoardMoods = []string{"Sedih", "Netral", "Baik", "Senang"}

// CurhatRepo defines the repository contract required by CurhatService.
type CurhatRepo interface {
	// CreateCurhat inserts a new anonymous message.
	CreateCurhat(ctx context.Context, db *gorm.DB, content, mood string) (*domain.Curhat, error)

	// ListCurhatsByDate returns one UTC day's messages, newest first.
	ListCurhatsByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]domain.Curhat, error)
}

// curhatRepoFuncs adapts the package-level repo functions to CurhatRepo.
type curhatRepoFuncs struct{}

func (curhatRepoFuncs) CreateCurhat(ctx context.Context, db *gorm.DB, content, mood string) (*domain.Curhat, error) {
	return repo.CreateCurhat(ctx, db, content, mood)
}
func (curhatRepoFuncs) ListCurhatsByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]domain.Curhat, error) {
	return repo.ListCurhatsByDate(ctx, db, day)
}

// Publisher is the feed fan-out contract; *ws.Hub satisfies it.
type Publisher interface {
	Broadcast(ev *ws.Event) (int, error)
}

// CurhatService provides board posting and date-scoped listing.
type CurhatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the curhat repository used by this service.
	Repo CurhatRepo
	// Feed receives an event per accepted post; may be nil in tests.
	Feed Publisher
}

// NewCurhatService constructs a CurhatService bound to the default repository.
func NewCurhatService(db *gorm.DB, feed Publisher) *CurhatService {
	return &CurhatService{DB: db, Repo: curhatRepoFuncs{}, Feed: feed}
}

// ValidBoardMood reports whether label is in the accepted board set.
func ValidBoardMood(label string) bool {
	for _, l := range BoardMoods {
		if l == label {
			return true
		}
	}
	return false
}

// Post validates and stores an anonymous message, then pushes a
// "curhat.insert" event to the feed.
func (s *CurhatService) Post(ctx context.Context, content, mood string) (*domain.Curhat, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if !ValidBoardMood(mood) {
		return nil, ErrInvalidBoardMood
	}

	c, err := s.Repo.CreateCurhat(ctx, s.DB, content, mood)
	if err != nil {
		return nil, err
	}

	if s.Feed != nil {
		if _, err := s.Feed.Broadcast(&ws.Event{Type: "curhat.insert", Data: c}); err != nil {
			log.Warn().Err(err).Str("curhat_id", c.ID).Msg("feed broadcast failed")
		}
	}
	return c, nil
}

// ListByDate returns the board messages for one UTC calendar day, newest
// first. A zero day means today.
func (s *CurhatService) ListByDate(ctx context.Context, day time.Time) ([]domain.Curhat, error) {
	if day.IsZero() {
		day = time.Now().UTC()
	}
	list, err := s.Repo.ListCurhatsByDate(ctx, s.DB, day)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Curhat{}
	}
	return list, nil
}
