// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Curhat
// model: the anonymous message board.
//
// Rows are insert-only from the API surface. There is deliberately no author
// column and no delete path, so the repository exposes only Create plus
// read-side queries.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// CreateCurhat inserts a new anonymous message with the given content and
// mood label. The ID is a randomly generated UUID and CreatedAt is set to
// UTC. Label validation belongs to the service layer.
func CreateCurhat(ctx context.Context, db *gorm.DB, content, mood string) (*domain.Curhat, error) {
	c := &domain.Curhat{
		ID:        uuid.NewString(),
		Content:   content,
		Mood:      mood,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListCurhatsByDate returns all messages whose CreatedAt falls on the given
// UTC calendar day (00:00:00 through 23:59:59.999...), newest first. Returns
// an empty slice when the day has no messages.
func ListCurhatsByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]domain.Curhat, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var out []domain.Curhat
	err := db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListCurhats returns every message oldest first. Used by the analytics
// export and the monthly heatmap.
func ListCurhats(ctx context.Context, db *gorm.DB) ([]domain.Curhat, error) {
	var out []domain.Curhat
	err := db.WithContext(ctx).Order("created_at asc").Find(&out).Error
	return out, err
}

// CountCurhats returns the total number of messages on the board.
func CountCurhats(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Curhat{}).Count(&total).Error
	return total, err
}
