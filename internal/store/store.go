// Package store implements the per-user JSON key-value store that replaces
// the browser localStorage of the original product. One row holds one
// serialized blob per (owner, key); readers supply a fallback value that
// survives missing rows and corrupt blobs.
//
// Guarantees (and non-guarantees):
//   - Read never fails on bad data: a missing row or an unparsable blob
//     leaves the caller's fallback untouched and returns nil.
//   - Write serializes and upserts a single key. There is no atomicity
//     across keys; a crash between two related writes can leave them
//     inconsistent. That risk is accepted, not mitigated.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// Store reads and writes typed records to per-key persistent blobs.
// It is safe for concurrent use; the underlying table serializes writers.
type Store struct {
	// DB is the database handle used for all entry operations.
	DB *gorm.DB
}

// New constructs a Store bound to the given database handle.
func New(db *gorm.DB) *Store { return &Store{DB: db} }

// Read loads the blob stored under (ownerID, key) into fallback, which must
// be a pointer. When the key is absent or the stored blob fails to decode,
// fallback keeps the value the caller initialized it with and Read returns
// nil — corruption is recovered silently, never surfaced. Only genuine
// database failures are returned.
func (s *Store) Read(ctx context.Context, ownerID, key string, fallback any) error {
	var entry domain.LocalEntry
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND key = ?", ownerID, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if jsonErr := json.Unmarshal(entry.Value, fallback); jsonErr != nil {
		// Unparsable blob: treat as absent. The next Write replaces it.
		return nil
	}
	return nil
}

// Write serializes value and upserts it under (ownerID, key).
func (s *Store) Write(ctx context.Context, ownerID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := domain.LocalEntry{OwnerID: ownerID, Key: key, Value: raw}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}
