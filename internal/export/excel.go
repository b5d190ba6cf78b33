// Package export renders the admin analytics snapshot as an .xlsx workbook.
//
// The workbook layout is fixed: four sheets (screenings, moods, reads,
// anon_curhat), one header row each, data in submission order as supplied by
// the caller. Aggregation happens upstream in the dashboard service; this
// package only serializes.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetScreenings = "screenings"
	SheetMoods      = "moods"
	SheetReads      = "reads"
	SheetCurhats    = "anon_curhat"
)

// ScreeningRow is one screening submission, flattened for the sheet.
type ScreeningRow struct {
	UserID    string
	RecordID  string
	Score     int
	Band      string
	CreatedAt time.Time
}

// MoodRow is one mood log entry.
type MoodRow struct {
	UserID    string
	Mood      string
	Note      string
	CreatedAt time.Time
}

// ReadRow is one article read-time log entry.
type ReadRow struct {
	UserID    string
	ArticleID int
	Seconds   int
	At        time.Time
}

// CurhatRow is one anonymous message. No user column on purpose.
type CurhatRow struct {
	ID        string
	Mood      string
	Content   string
	CreatedAt time.Time
}

// Snapshot is everything the workbook needs, already collected.
type Snapshot struct {
	Screenings []ScreeningRow
	Moods      []MoodRow
	Reads      []ReadRow
	Curhats    []CurhatRow
}

// Filename returns the attachment name for an export taken at t,
// e.g. "mindgenz-analytics-2026-08-31.xlsx".
func Filename(t time.Time) string {
	return fmt.Sprintf("mindgenz-analytics-%s.xlsx", t.Format("2006-01-02"))
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Workbook builds the four-sheet workbook from the snapshot. The caller owns
// the returned file and should Close it when done.
func Workbook(snap Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSheet(f, SheetScreenings,
		[]string{"user_id", "record_id", "score", "band", "created_at"},
		len(snap.Screenings), func(i int) []any {
			r := snap.Screenings[i]
			return []any{r.UserID, r.RecordID, r.Score, r.Band, stamp(r.CreatedAt)}
		}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetMoods,
		[]string{"user_id", "mood", "note", "created_at"},
		len(snap.Moods), func(i int) []any {
			r := snap.Moods[i]
			return []any{r.UserID, r.Mood, r.Note, stamp(r.CreatedAt)}
		}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetReads,
		[]string{"user_id", "article_id", "seconds", "at"},
		len(snap.Reads), func(i int) []any {
			r := snap.Reads[i]
			return []any{r.UserID, r.ArticleID, r.Seconds, stamp(r.At)}
		}); err != nil {
		return nil, err
	}

	if err := writeSheet(f, SheetCurhats,
		[]string{"id", "mood", "content", "created_at"},
		len(snap.Curhats), func(i int) []any {
			r := snap.Curhats[i]
			return []any{r.ID, r.Mood, r.Content, stamp(r.CreatedAt)}
		}); err != nil {
		return nil, err
	}

	// excelize seeds every file with "Sheet1"; drop it so the workbook
	// opens on the screenings sheet.
	idx, err := f.GetSheetIndex(SheetScreenings)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, snap Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, header []string, n int, row func(i int) []any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := setRow(f, name, 1, toAny(header)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := setRow(f, name, i+2, row(i)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
