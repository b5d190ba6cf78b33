// Package notify implements the high-risk alert gate. Each screening id moves
// through a one-way state machine, Unseen -> Notified, and the persisted
// notified-set is the only record of that state: re-renders, re-sweeps, and
// restarts must never alert the same id twice. The reviewed-set handled at the
// bottom of this file is operator triage bookkeeping and is deliberately
// independent of notification state.
package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/screening"
)

// highRiskAlerts counts emitted high-risk alerts, labeled by severity band.
var highRiskAlerts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "screening_highrisk_alerts_total",
		Help: "Total number of high-risk screening alerts emitted.",
	},
	[]string{"band"},
)

func init() {
	prometheus.MustRegister(highRiskAlerts)
}

// SetStore is the narrow persistence contract the gate needs: the per-user
// key-value store (internal/store) satisfies it.
type SetStore interface {
	Read(ctx context.Context, ownerID, key string, fallback any) error
	Write(ctx context.Context, ownerID, key string, value any) error
}

// Alerter receives exactly one call per newly notified screening.
type Alerter interface {
	HighRisk(ctx context.Context, ownerID string, rec domain.ScreeningRecord)
}

// LogAlerter emits alerts to the structured log and the Prometheus counter.
// The browser notification of the original product becomes an operator-visible
// log line here; a future transport (email, webhook) would implement Alerter.
type LogAlerter struct{}

// HighRisk logs the alert and bumps the metric.
func (LogAlerter) HighRisk(_ context.Context, ownerID string, rec domain.ScreeningRecord) {
	band := screening.Classify(rec.Score).Band
	highRiskAlerts.WithLabelValues(string(band)).Inc()
	log.Warn().
		Str("owner_id", ownerID).
		Str("screening_id", rec.ID).
		Int("score", rec.Score).
		Time("created_at", rec.CreatedAt).
		Msg("high-risk screening detected")
}

// Gate deduplicates high-risk alerts against the persisted notified-set.
type Gate struct {
	Store   SetStore
	Alerter Alerter
}

// NewGate constructs a Gate. A nil alerter falls back to LogAlerter.
func NewGate(store SetStore, alerter Alerter) *Gate {
	if alerter == nil {
		alerter = LogAlerter{}
	}
	return &Gate{Store: store, Alerter: alerter}
}

// Sweep walks the given screenings and fires one alert for every high-risk
// record whose id is not yet in the owner's notified-set. Each transition is
// persisted before its alert is emitted, so a crash can at worst suppress an
// alert, never duplicate one. Sweep returns the number of new alerts.
//
// Records below the severe threshold and ids already in the set are skipped;
// sweeping the same list again is a no-op.
func (g *Gate) Sweep(ctx context.Context, ownerID string, screenings []domain.ScreeningRecord) (int, error) {
	var notified []string
	if err := g.Store.Read(ctx, ownerID, domain.KeyNotified, &notified); err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(notified))
	for _, id := range notified {
		seen[id] = struct{}{}
	}

	fired := 0
	for _, rec := range screenings {
		if !screening.IsHighRisk(rec.Score) {
			continue
		}
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		notified = append(notified, rec.ID)
		seen[rec.ID] = struct{}{}
		if err := g.Store.Write(ctx, ownerID, domain.KeyNotified, notified); err != nil {
			return fired, err
		}
		g.Alerter.HighRisk(ctx, ownerID, rec)
		fired++
	}
	return fired, nil
}

// MarkReviewed adds a screening id to the owner's reviewed-set. Marking an
// already reviewed id is a no-op. Reviewed state never feeds back into the
// notified-set.
func (g *Gate) MarkReviewed(ctx context.Context, ownerID, screeningID string) error {
	var reviewed []string
	if err := g.Store.Read(ctx, ownerID, domain.KeyReviewed, &reviewed); err != nil {
		return err
	}
	for _, id := range reviewed {
		if id == screeningID {
			return nil
		}
	}
	reviewed = append(reviewed, screeningID)
	return g.Store.Write(ctx, ownerID, domain.KeyReviewed, reviewed)
}

// Reviewed returns the owner's reviewed-set as a lookup map.
func (g *Gate) Reviewed(ctx context.Context, ownerID string) (map[string]bool, error) {
	var reviewed []string
	if err := g.Store.Read(ctx, ownerID, domain.KeyReviewed, &reviewed); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(reviewed))
	for _, id := range reviewed {
		out[id] = true
	}
	return out, nil
}
