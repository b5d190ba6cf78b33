// Package services – ScreeningService
//
// This file implements the ScreeningService, which scores submitted
// questionnaires and keeps each user's screening history. Records are
// immutable snapshots: the band, description, and tips are classified once at
// submission and never recomputed for display. The history lives under one
// store key, newest first, capped at MaxScreenings entries.
//
// When a Gate is attached, every submission sweeps the user's history so a
// new high-risk result raises its one-time alert immediately rather than
// waiting for the next dashboard load.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/notify"
	"github.com/mindgenz/go-mind-backend/internal/screening"
)

// MaxScreenings caps the stored screening history per user.
const MaxScreenings = 50

// ScreeningService provides questionnaire submission and history listing.
type ScreeningService struct {
	// Store is the per-user key-value backend.
	Store Store
	// Gate, when non-nil, is swept after each submission.
	Gate *notify.Gate
}

// NewScreeningService constructs a ScreeningService.
func NewScreeningService(st Store, gate *notify.Gate) *ScreeningService {
	return &ScreeningService{Store: st, Gate: gate}
}

// Submit scores the answers, classifies the result, prepends the record to
// the user's history (dropping the oldest past the cap), and returns both
// the stored record and the full classification.
//
// Returns screening.ErrUnanswered when any of the ten questions is missing.
func (s *ScreeningService) Submit(ctx context.Context, userID string, answers []*bool) (*domain.ScreeningRecord, *screening.Result, error) {
	score, err := screening.Score(answers)
	if err != nil {
		return nil, nil, err
	}
	result := screening.Classify(score)

	flat := make([]bool, len(answers))
	for i, a := range answers {
		flat[i] = *a
	}
	rec := domain.ScreeningRecord{
		ID:              uuid.NewString(),
		Answers:         flat,
		Score:           score,
		Band:            result.Band,
		Recommendations: result.Recommendations,
		CreatedAt:       time.Now().UTC(),
	}

	var list []domain.ScreeningRecord
	if err := s.Store.Read(ctx, userID, domain.KeyScreenings, &list); err != nil {
		return nil, nil, err
	}
	list = append([]domain.ScreeningRecord{rec}, list...)
	if len(list) > MaxScreenings {
		list = list[:MaxScreenings]
	}
	if err := s.Store.Write(ctx, userID, domain.KeyScreenings, list); err != nil {
		return nil, nil, err
	}

	if s.Gate != nil {
		// A failed sweep must not fail the submission; the next dashboard
		// load sweeps again and picks up whatever was not yet notified.
		_, _ = s.Gate.Sweep(ctx, userID, list)
	}
	return &rec, &result, nil
}

// List returns the user's screening history, newest first.
func (s *ScreeningService) List(ctx context.Context, userID string) ([]domain.ScreeningRecord, error) {
	var list []domain.ScreeningRecord
	if err := s.Store.Read(ctx, userID, domain.KeyScreenings, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.ScreeningRecord{}
	}
	return list, nil
}
