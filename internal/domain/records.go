// Package domain – local-store records.
//
// This file defines the JSON shapes persisted through the per-user key-value
// store (internal/store). Unlike the GORM models these rows have no schema
// enforcement: blobs are decoded leniently and a corrupt blob is replaced by
// the caller's fallback value.
package domain

import (
	"time"

	"github.com/mindgenz/go-mind-backend/internal/screening"
)

// Store keys used by the record stores. One key holds one JSON blob per user.
const (
	KeyMoods      = "moods"      // []MoodRecord, newest first, cap 100
	KeyScreenings = "screenings" // []ScreeningRecord, newest first, cap 50
	KeyFavorites  = "favorites"  // []int, article ids, insertion order
	KeyComments   = "comments"   // map[article id][]Comment, newest first
	KeyReadLog    = "readtime"   // []ReadLog, append order
	KeyNotified   = "notified"   // []string, screening ids already alerted
	KeyReviewed   = "reviewed"   // []string, screening ids marked reviewed
)

// MoodRecord is one saved mood check-in.
type MoodRecord struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScreeningRecord is one completed questionnaire. Records are immutable once
// created; the stored band and recommendations are a snapshot of the
// classification at submission time. Aggregates must not read Band directly,
// they re-derive it from Score (see analytics.SeverityDistribution).
type ScreeningRecord struct {
	ID              string         `json:"id"`
	Answers         []bool         `json:"answers"`
	Score           int            `json:"score"`
	Band            screening.Band `json:"band"`
	Recommendations []string       `json:"recommendations"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Comment is one reader comment under an article.
type Comment struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"at"`
}

// ReadLog records one article reading session.
type ReadLog struct {
	ArticleID int       `json:"article_id"`
	Seconds   int       `json:"seconds"`
	At        time.Time `json:"at"`
}
