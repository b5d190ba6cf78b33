package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/repo"
)

// memStore is an in-memory Store fake mirroring the JSON round trip of the
// real key-value adapter, including the "missing key leaves fallback alone"
// contract.
type memStore struct {
	blobs map[string][]byte // "<owner>/<key>" -> JSON
}

func newMemStore() *memStore { return &memStore{blobs: make(map[string][]byte)} }

func (m *memStore) Read(_ context.Context, ownerID, key string, fallback any) error {
	raw, ok := m.blobs[ownerID+"/"+key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, fallback); err != nil {
		// Corrupt blob: keep the fallback, same as the real store.
		return nil
	}
	return nil
}

func (m *memStore) Write(_ context.Context, ownerID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.blobs[ownerID+"/"+key] = raw
	return nil
}

// newServiceDB opens a throwaway SQLite database with the full schema.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "svc_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
