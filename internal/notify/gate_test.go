package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mindgenz/go-mind-backend/internal/domain"
)

// ----- Fake store -----

// fakeStore keeps blobs in memory, mimicking the JSON round trip of the real
// key-value store.
type fakeStore struct {
	blobs  map[string][]byte // "<owner>/<key>" -> JSON
	writes int
}

func newFakeStore() *fakeStore { return &fakeStore{blobs: make(map[string][]byte)} }

func (f *fakeStore) Read(_ context.Context, ownerID, key string, fallback any) error {
	raw, ok := f.blobs[ownerID+"/"+key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, fallback)
}

func (f *fakeStore) Write(_ context.Context, ownerID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.blobs[ownerID+"/"+key] = raw
	f.writes++
	return nil
}

// ----- Recording alerter -----

type recordAlerter struct {
	ids []string
}

func (r *recordAlerter) HighRisk(_ context.Context, _ string, rec domain.ScreeningRecord) {
	r.ids = append(r.ids, rec.ID)
}

// ----- Tests -----

func TestSweep_AlertsOncePerHighRiskRecord(t *testing.T) {
	store := newFakeStore()
	alerter := &recordAlerter{}
	g := NewGate(store, alerter)
	ctx := context.Background()

	recs := []domain.ScreeningRecord{
		{ID: "s1", Score: 9},
		{ID: "s2", Score: 4}, // below threshold, never alerted
		{ID: "s3", Score: 8},
	}

	fired, err := g.Sweep(ctx, "u1", recs)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if fired != 2 {
		t.Fatalf("fired = %d; want 2", fired)
	}
	if len(alerter.ids) != 2 || alerter.ids[0] != "s1" || alerter.ids[1] != "s3" {
		t.Fatalf("alerted ids = %v; want [s1 s3]", alerter.ids)
	}

	// Notified set persisted.
	var notified []string
	if err := store.Read(ctx, "u1", domain.KeyNotified, &notified); err != nil {
		t.Fatalf("read notified: %v", err)
	}
	if len(notified) != 2 {
		t.Fatalf("notified = %v; want [s1 s3]", notified)
	}
}

func TestSweep_RerunIsNoop(t *testing.T) {
	store := newFakeStore()
	alerter := &recordAlerter{}
	g := NewGate(store, alerter)
	ctx := context.Background()

	recs := []domain.ScreeningRecord{{ID: "s1", Score: 9}}

	if _, err := g.Sweep(ctx, "u1", recs); err != nil {
		t.Fatalf("first Sweep: %v", err)
	}
	// Simulate the re-render: same list swept again.
	fired, err := g.Sweep(ctx, "u1", recs)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if fired != 0 {
		t.Fatalf("second sweep fired = %d; want 0", fired)
	}
	if len(alerter.ids) != 1 {
		t.Fatalf("alerts = %v; want exactly one", alerter.ids)
	}
}

func TestSweep_PersistedSetSurvivesNewGate(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	first := NewGate(store, &recordAlerter{})
	if _, err := first.Sweep(ctx, "u1", []domain.ScreeningRecord{{ID: "s1", Score: 10}}); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	// A fresh gate (process restart) must still see the persisted state.
	alerter := &recordAlerter{}
	second := NewGate(store, alerter)
	fired, err := second.Sweep(ctx, "u1", []domain.ScreeningRecord{{ID: "s1", Score: 10}})
	if err != nil {
		t.Fatalf("Sweep after restart: %v", err)
	}
	if fired != 0 || len(alerter.ids) != 0 {
		t.Fatalf("restart re-alerted: fired=%d ids=%v", fired, alerter.ids)
	}
}

func TestMarkReviewed_IndependentOfNotified(t *testing.T) {
	store := newFakeStore()
	g := NewGate(store, &recordAlerter{})
	ctx := context.Background()

	if err := g.MarkReviewed(ctx, "u1", "s1"); err != nil {
		t.Fatalf("MarkReviewed: %v", err)
	}
	// Idempotent.
	if err := g.MarkReviewed(ctx, "u1", "s1"); err != nil {
		t.Fatalf("MarkReviewed again: %v", err)
	}

	reviewed, err := g.Reviewed(ctx, "u1")
	if err != nil {
		t.Fatalf("Reviewed: %v", err)
	}
	if !reviewed["s1"] || len(reviewed) != 1 {
		t.Fatalf("reviewed = %v; want {s1}", reviewed)
	}

	// Reviewing must not have touched the notified set.
	var notified []string
	if err := store.Read(ctx, "u1", domain.KeyNotified, &notified); err != nil {
		t.Fatalf("read notified: %v", err)
	}
	if len(notified) != 0 {
		t.Fatalf("notified mutated by review: %v", notified)
	}
}
