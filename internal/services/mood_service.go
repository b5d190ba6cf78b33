// Package services – MoodService
//
// This file implements the MoodService, which manages per-user mood check-ins
// stored through the key-value store. The list lives under one key as a JSON
// blob, newest first, capped at MaxMoods entries; the oldest entry is dropped
// when the cap is exceeded. Labels come from a fixed set and anything else is
// rejected before touching storage.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// MaxMoods caps the stored mood history per user.
const MaxMoods = 100

// MoodLabels is the fixed set of accepted check-in labels.
var MoodLabels = []string{"Happy", "Calm", "Anxious", "Sad", "Angry", "Neutral"}

// Store is the per-user key-value contract the record services depend on.
// internal/store.Store satisfies it; tests substitute an in-memory fake.
type Store interface {
	// Read decodes the blob at (ownerID, key) into fallback, leaving
	// fallback untouched when the key is missing or the blob is corrupt.
	Read(ctx context.Context, ownerID, key string, fallback any) error

	// Write marshals value and upserts it at (ownerID, key).
	Write(ctx context.Context, ownerID, key string, value any) error
}

// MoodService provides mood check-in operations.
type MoodService struct {
	// Store is the per-user key-value backend.
	Store Store
}

// NewMoodService constructs a MoodService.
func NewMoodService(st Store) *MoodService {
	return &MoodService{Store: st}
}

// ValidMoodLabel reports whether label is in the accepted set.
func ValidMoodLabel(label string) bool {
	for _, l := range MoodLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Save records a new mood check-in at the head of the user's list and
// returns it. The 101st entry pushes the oldest one out.
func (s *MoodService) Save(ctx context.Context, userID, mood, note string) (*domain.MoodRecord, error) {
	if !ValidMoodLabel(mood) {
		return nil, ErrInvalidMoodLabel
	}

	rec := domain.MoodRecord{
		ID:        uuid.NewString(),
		Mood:      mood,
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
	}

	var list []domain.MoodRecord
	if err := s.Store.Read(ctx, userID, domain.KeyMoods, &list); err != nil {
		return nil, err
	}
	list = append([]domain.MoodRecord{rec}, list...)
	if len(list) > MaxMoods {
		list = list[:MaxMoods]
	}
	if err := s.Store.Write(ctx, userID, domain.KeyMoods, list); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the user's mood history, newest first.
func (s *MoodService) List(ctx context.Context, userID string) ([]domain.MoodRecord, error) {
	var list []domain.MoodRecord
	if err := s.Store.Read(ctx, userID, domain.KeyMoods, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.MoodRecord{}
	}
	return list, nil
}

// Delete removes the entry with the given id. Returns ErrMoodNotFound when
// the id is not in the user's list.
func (s *MoodService) Delete(ctx context.Context, userID, id string) error {
	var list []domain.MoodRecord
	if err := s.Store.Read(ctx, userID, domain.KeyMoods, &list); err != nil {
		return err
	}

	kept := list[:0]
	found := false
	for _, rec := range list {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return ErrMoodNotFound
	}
	return s.Store.Write(ctx, userID, domain.KeyMoods, kept)
}
