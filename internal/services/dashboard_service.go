// Package services – DashboardService
//
// This file implements the admin analytics surface. It collects every
// account's stored records plus the anonymous board into one pass, hands the
// raw collections to the pure aggregation functions in internal/analytics,
// and sweeps the notification gate so pending high-risk alerts fire on the
// next dashboard load. The same collection pass feeds the spreadsheet export.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mindgenz/go-mind-backend/internal/analytics"
	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/export"
	"github.com/mindgenz/go-mind-backend/internal/notify"
	"github.com/mindgenz/go-mind-backend/internal/repo"
	"github.com/mindgenz/go-mind-backend/internal/screening"
)

// DashboardRepo defines the repository contract required by DashboardService.
type DashboardRepo interface {
	// ListProfiles returns every account.
	ListProfiles(ctx context.Context, db *gorm.DB) ([]domain.Profile, error)

	// ListCurhats returns every anonymous message, oldest first.
	ListCurhats(ctx context.Context, db *gorm.DB) ([]domain.Curhat, error)
}

// dashboardRepoFuncs adapts the package-level repo functions to DashboardRepo.
type dashboardRepoFuncs struct{}

func (dashboardRepoFuncs) ListProfiles(ctx context.Context, db *gorm.DB) ([]domain.Profile, error) {
	return repo.ListProfiles(ctx, db)
}
func (dashboardRepoFuncs) ListCurhats(ctx context.Context, db *gorm.DB) ([]domain.Curhat, error) {
	return repo.ListCurhats(ctx, db)
}

// HighRiskEntry is one dashboard triage row: a high-risk screening joined
// with its owner and reviewed flag.
type HighRiskEntry struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	RecordID  string    `json:"record_id"`
	Score     int       `json:"score"`
	Band      string    `json:"band"`
	CreatedAt time.Time `json:"created_at"`
	Reviewed  bool      `json:"reviewed"`
}

// Summary is the dashboard payload.
type Summary struct {
	TotalUsers       int                          `json:"total_users"`
	TotalScreenings  int                          `json:"total_screenings"`
	TotalCurhats     int                          `json:"total_curhats"`
	MoodsPerWeek     map[string]int               `json:"moods_per_week"`
	Severity         map[screening.Band]int       `json:"severity"`
	ScreeningsByUser map[string]int               `json:"screenings_by_user"`
	AvgReadSeconds   int                          `json:"avg_read_seconds"`
	ReadsPerDay      map[string]int               `json:"reads_per_day"`
	Heatmap          map[string]analytics.DayCell `json:"heatmap"`
	HighRisk         []HighRiskEntry              `json:"high_risk"`
	AlertsFired      int                          `json:"alerts_fired"`
}

// DashboardService aggregates analytics for the admin views.
type DashboardService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo lists accounts and board messages.
	Repo DashboardRepo
	// Store reads each account's record blobs.
	Store Store
	// Gate is swept per account during Summarize and serves MarkReviewed.
	Gate *notify.Gate
}

// NewDashboardService constructs a DashboardService bound to the default
// repository.
func NewDashboardService(db *gorm.DB, st Store, gate *notify.Gate) *DashboardService {
	return &DashboardService{DB: db, Repo: dashboardRepoFuncs{}, Store: st, Gate: gate}
}

// collected is the raw material shared by Summarize and Snapshot.
type collected struct {
	profiles   []domain.Profile
	curhats    []domain.Curhat
	screenings map[string][]domain.ScreeningRecord // by user id
	moods      map[string][]domain.MoodRecord
	reads      map[string][]domain.ReadLog
}

func (s *DashboardService) collect(ctx context.Context) (*collected, error) {
	profiles, err := s.Repo.ListProfiles(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	curhats, err := s.Repo.ListCurhats(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	c := &collected{
		profiles:   profiles,
		curhats:    curhats,
		screenings: make(map[string][]domain.ScreeningRecord, len(profiles)),
		moods:      make(map[string][]domain.MoodRecord, len(profiles)),
		reads:      make(map[string][]domain.ReadLog, len(profiles)),
	}
	for _, p := range profiles {
		var scr []domain.ScreeningRecord
		if err := s.Store.Read(ctx, p.ID, domain.KeyScreenings, &scr); err != nil {
			return nil, err
		}
		c.screenings[p.ID] = scr

		var moods []domain.MoodRecord
		if err := s.Store.Read(ctx, p.ID, domain.KeyMoods, &moods); err != nil {
			return nil, err
		}
		c.moods[p.ID] = moods

		var reads []domain.ReadLog
		if err := s.Store.Read(ctx, p.ID, domain.KeyReadLog, &reads); err != nil {
			return nil, err
		}
		c.reads[p.ID] = reads
	}
	return c, nil
}

// Summarize builds the dashboard aggregates for the given "YYYY-MM" month
// (heatmap and reads-per-day scope; the other aggregates are all-time) and
// sweeps the notification gate for every account.
func (s *DashboardService) Summarize(ctx context.Context, monthISO string) (*Summary, error) {
	c, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	var allScreenings []domain.ScreeningRecord
	var allMoods []domain.MoodRecord
	var allReads []domain.ReadLog
	var screeningOwners []string
	names := make(map[string]string, len(c.profiles))
	for _, p := range c.profiles {
		names[p.ID] = p.Username
	}

	fired := 0
	var highRisk []HighRiskEntry
	for _, p := range c.profiles {
		scr := c.screenings[p.ID]
		allScreenings = append(allScreenings, scr...)
		for range scr {
			screeningOwners = append(screeningOwners, p.ID)
		}
		allMoods = append(allMoods, c.moods[p.ID]...)
		allReads = append(allReads, c.reads[p.ID]...)

		n, err := s.Gate.Sweep(ctx, p.ID, scr)
		if err != nil {
			return nil, err
		}
		fired += n

		reviewed, err := s.Gate.Reviewed(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range analytics.HighRisk(scr) {
			highRisk = append(highRisk, HighRiskEntry{
				UserID:    p.ID,
				Username:  names[p.ID],
				RecordID:  rec.ID,
				Score:     rec.Score,
				Band:      string(screening.Classify(rec.Score).Band),
				CreatedAt: rec.CreatedAt,
				Reviewed:  reviewed[rec.ID],
			})
		}
	}

	return &Summary{
		TotalUsers:       len(c.profiles),
		TotalScreenings:  len(allScreenings),
		TotalCurhats:     len(c.curhats),
		MoodsPerWeek:     analytics.MoodsPerWeek(allMoods),
		Severity:         analytics.SeverityDistribution(allScreenings),
		ScreeningsByUser: analytics.CountByUser(screeningOwners),
		AvgReadSeconds:   analytics.AverageReadSeconds(allReads),
		ReadsPerDay:      analytics.ReadsPerDay(allReads, monthISO),
		Heatmap:          analytics.HeatmapForMonth(c.curhats, monthISO),
		HighRisk:         highRisk,
		AlertsFired:      fired,
	}, nil
}

// MarkReviewed flags one high-risk screening as triaged by an operator.
func (s *DashboardService) MarkReviewed(ctx context.Context, userID, recordID string) error {
	return s.Gate.MarkReviewed(ctx, userID, recordID)
}

// Snapshot flattens every account's records plus the board into the
// spreadsheet export shape.
func (s *DashboardService) Snapshot(ctx context.Context) (*export.Snapshot, error) {
	c, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	snap := &export.Snapshot{}
	for _, p := range c.profiles {
		for _, rec := range c.screenings[p.ID] {
			snap.Screenings = append(snap.Screenings, export.ScreeningRow{
				UserID:    p.ID,
				RecordID:  rec.ID,
				Score:     rec.Score,
				Band:      string(screening.Classify(rec.Score).Band),
				CreatedAt: rec.CreatedAt,
			})
		}
		for _, m := range c.moods[p.ID] {
			snap.Moods = append(snap.Moods, export.MoodRow{
				UserID:    p.ID,
				Mood:      m.Mood,
				Note:      m.Note,
				CreatedAt: m.CreatedAt,
			})
		}
		for _, r := range c.reads[p.ID] {
			snap.Reads = append(snap.Reads, export.ReadRow{
				UserID:    p.ID,
				ArticleID: r.ArticleID,
				Seconds:   r.Seconds,
				At:        r.At,
			})
		}
	}
	for _, m := range c.curhats {
		snap.Curhats = append(snap.Curhats, export.CurhatRow{
			ID:        m.ID,
			Mood:      m.Mood,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return snap, nil
}
