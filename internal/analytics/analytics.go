// Package analytics derives the dashboard aggregates from raw records. Every
// function is pure: collections in, maps out, no clock, no storage. The
// severity distribution deliberately re-applies the scoring thresholds to the
// stored scores so classification stays single-sourced in package screening.
package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/screening"
)

// WeekLabel formats a time as its ISO-8601 week bucket, e.g. "2026-W01".
//
// The year component is the ISO week-year, not the calendar year: Dec 29 2025
// labels as 2026-W01 and Jan 1 2027 as 2026-W53. time.ISOWeek implements the
// standard Thursday-anchored algorithm.
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// GroupByISOWeek buckets timestamps by ISO week label and counts them.
// An empty input yields an empty (non-nil) map.
func GroupByISOWeek(times []time.Time) map[string]int {
	out := make(map[string]int, len(times))
	for _, t := range times {
		out[WeekLabel(t)]++
	}
	return out
}

// MoodsPerWeek buckets mood check-ins by the ISO week they were saved in.
func MoodsPerWeek(moods []domain.MoodRecord) map[string]int {
	times := make([]time.Time, len(moods))
	for i, m := range moods {
		times[i] = m.CreatedAt
	}
	return GroupByISOWeek(times)
}

// AverageReadSeconds returns the mean reading duration rounded to the nearest
// whole second, or 0 when there are no sessions.
func AverageReadSeconds(reads []domain.ReadLog) int {
	if len(reads) == 0 {
		return 0
	}
	total := 0
	for _, r := range reads {
		total += r.Seconds
	}
	return int(math.Round(float64(total) / float64(len(reads))))
}

// DayCell is one heatmap cell: the message total for a calendar day plus
// per-mood sub-counts.
type DayCell struct {
	Total int            `json:"total"`
	Moods map[string]int `json:"moods"`
}

// HeatmapForMonth tallies anonymous messages per calendar day for the given
// "YYYY-MM" month. Keys are "YYYY-MM-DD" dates in UTC; days without activity
// are absent, the calendar renderer fills its own gaps. An unknown or empty
// mood label is tallied as "Unknown".
func HeatmapForMonth(msgs []domain.Curhat, monthISO string) map[string]DayCell {
	out := make(map[string]DayCell)
	for _, m := range msgs {
		date := m.CreatedAt.UTC().Format("2006-01-02")
		if !strings.HasPrefix(date, monthISO) {
			continue
		}
		cell, ok := out[date]
		if !ok {
			cell = DayCell{Moods: make(map[string]int)}
		}
		cell.Total++
		label := m.Mood
		if label == "" {
			label = "Unknown"
		}
		cell.Moods[label]++
		out[date] = cell
	}
	return out
}

// ReadsPerDay counts reading sessions per calendar day within the given
// "YYYY-MM" month. Days without sessions are absent.
func ReadsPerDay(reads []domain.ReadLog, monthISO string) map[string]int {
	out := make(map[string]int)
	for _, r := range reads {
		date := r.At.UTC().Format("2006-01-02")
		if strings.HasPrefix(date, monthISO) {
			out[date]++
		}
	}
	return out
}

// SeverityDistribution counts screenings per severity band by re-applying
// the classification thresholds to each stored score. Stored band strings
// are ignored on purpose: the distribution must always be derivable from
// scores alone. Every band appears in the result, zero counts included.
func SeverityDistribution(screenings []domain.ScreeningRecord) map[screening.Band]int {
	out := make(map[screening.Band]int, len(screening.Bands))
	for _, b := range screening.Bands {
		out[b] = 0
	}
	for _, s := range screenings {
		out[screening.Classify(s.Score).Band]++
	}
	return out
}

// HighRisk filters the screenings at or above the severe threshold,
// preserving input order.
func HighRisk(screenings []domain.ScreeningRecord) []domain.ScreeningRecord {
	var out []domain.ScreeningRecord
	for _, s := range screenings {
		if screening.IsHighRisk(s.Score) {
			out = append(out, s)
		}
	}
	return out
}

// CountByUser tallies records per owning user id. Empty ids are grouped
// under "anonymous", matching the dashboard's per-user screening counter.
func CountByUser(ownerIDs []string) map[string]int {
	out := make(map[string]int, len(ownerIDs))
	for _, id := range ownerIDs {
		if id == "" {
			id = "anonymous"
		}
		out[id]++
	}
	return out
}
