// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// CurhatsStats returns aggregate metadata for the anonymous board on a given
// UTC day: the total number of messages and the maximum CreatedAt among them.
//
// It executes two lightweight queries against the curhats table scoped to the
// day. When the day has no messages, the returned count is 0 and maxCreatedAt
// is nil.
//
// Return values:
//   - count:        total messages on that day
//   - maxCreatedAt: pointer to the greatest CreatedAt, or nil if no rows
//   - err:          database error, if any
func CurhatsStats(ctx context.Context, db *gorm.DB, day time.Time) (count int64, maxCreatedAt *time.Time, err error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	q := db.WithContext(ctx).Model(&domain.Curhat{}).
		Where("created_at >= ? AND created_at < ?", start, end)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}

// StoreStats returns aggregate metadata for a user's key-value entries: the
// number of keys and the greatest UpdatedAt among them. Used to short-circuit
// dashboard refreshes when nothing changed.
func StoreStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.LocalEntry{}).Where("owner_id = ?", ownerID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
