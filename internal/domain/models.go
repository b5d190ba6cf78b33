// Package domain defines the persistence models for profiles, anonymous
// messages (curhats), per-user key-value entries, and idempotency records.
// These types are mapped with GORM and form the core data layer of the
// MindGenZ companion backend.
package domain

import (
	"time"
)

// Role values stored in the profiles table.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile represents an account in the system. The original product split
// identity (email + credential) from the profile row; here the credential is
// collapsed into the same table since there is no external identity provider.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: login identifier, unique.
//   - Username: display name shown on the dashboard user filter.
//   - Role: "admin" or "user" (enforced by DB constraint). Admins can open
//     the analytics dashboard and create accounts.
//   - PasswordHash: bcrypt hash of the login password; never serialized.
type Profile struct {
	ID           string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex"`
	Username     string    `json:"username"  gorm:"type:varchar(64);not null"`
	Role         string    `json:"role"      gorm:"type:varchar(16);not null;default:'user';check:role IN ('admin','user')"`
	PasswordHash string    `json:"-"         gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Curhat is a single anonymous message on the public board. Rows are
// insert-only from the API: there is no edit or delete surface for end
// users, and no author reference is ever stored.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Content: the message text.
//   - Mood: one of the four fixed board labels (Sedih, Netral, Baik, Senang).
//   - CreatedAt: insertion timestamp (UTC); indexed for date-range queries.
type Curhat struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	Mood      string    `json:"mood"       gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for Curhat.
func (Curhat) TableName() string { return "curhats" }

// LocalEntry is one key of the per-user JSON store. The browser front end
// kept these blobs in localStorage; the backend keeps them here with the same
// contract: opaque JSON, no schema versioning, no cross-key atomicity.
//
// A row is scoped by (owner_id, key), e.g. ("<profile-id>", "moods").
type LocalEntry struct {
	OwnerID   string    `gorm:"type:char(36);not null;primaryKey"`
	Key       string    `gorm:"type:varchar(64);not null;primaryKey"`
	Value     []byte    `gorm:"type:blob;not null"`
	UpdatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoUpdateTime"`
}

// TableName returns the database table name for LocalEntry.
func (LocalEntry) TableName() string { return "local_entries" }

// Idempotency records a previously processed submission, keyed by
// (user_id, key). It lets retried POSTs of moods and screenings (double taps,
// flaky networks) be answered without re-executing side effects.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_key,priority:1"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_key,priority:2"`
	RecordID  string    `gorm:"type:TEXT NOT NULL"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName returns the database table name for Idempotency.
func (Idempotency) TableName() string { return "idempotency" }
