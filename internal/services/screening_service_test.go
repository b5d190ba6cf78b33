package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mindgenz/go-mind-backend/internal/domain"
	"github.com/mindgenz/go-mind-backend/internal/notify"
	"github.com/mindgenz/go-mind-backend/internal/screening"
)

func yes(n int) []*bool {
	out := make([]*bool, screening.QuestionCount)
	for i := range out {
		v := i < n
		out[i] = &v
	}
	return out
}

type countAlerter struct{ n int }

func (c *countAlerter) HighRisk(context.Context, string, domain.ScreeningRecord) { c.n++ }

func TestScreeningSubmit(t *testing.T) {
	st := newMemStore()
	s := NewScreeningService(st, notify.NewGate(st, &countAlerter{}))
	ctx := context.Background()

	rec, result, err := s.Submit(ctx, "u1", yes(4))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Score != 4 || rec.Band != screening.BandSedang {
		t.Errorf("rec = %+v", rec)
	}
	if result.Band != screening.BandSedang || len(result.Recommendations) != 3 {
		t.Errorf("result = %+v", result)
	}
	if len(rec.Answers) != screening.QuestionCount {
		t.Errorf("answers len = %d", len(rec.Answers))
	}
}

func TestScreeningSubmit_RejectsUnanswered(t *testing.T) {
	st := newMemStore()
	s := NewScreeningService(st, notify.NewGate(st, nil))
	ctx := context.Background()

	answers := yes(3)
	answers[7] = nil
	if _, _, err := s.Submit(ctx, "u1", answers); !errors.Is(err, screening.ErrUnanswered) {
		t.Errorf("err = %v; want ErrUnanswered", err)
	}
	if _, _, err := s.Submit(ctx, "u1", yes(3)[:5]); !errors.Is(err, screening.ErrUnanswered) {
		t.Errorf("short err = %v; want ErrUnanswered", err)
	}

	// Nothing persisted on rejection.
	list, err := s.List(ctx, "u1")
	if err != nil || len(list) != 0 {
		t.Errorf("List = (%v, %v); want empty", list, err)
	}
}

func TestScreeningSubmit_HighRiskSweepsGate(t *testing.T) {
	st := newMemStore()
	alerter := &countAlerter{}
	s := NewScreeningService(st, notify.NewGate(st, alerter))
	ctx := context.Background()

	if _, _, err := s.Submit(ctx, "u1", yes(9)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if alerter.n != 1 {
		t.Errorf("alerts = %d; want 1", alerter.n)
	}

	// A second low score must not re-alert the first record.
	if _, _, err := s.Submit(ctx, "u1", yes(1)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if alerter.n != 1 {
		t.Errorf("alerts after low score = %d; want 1", alerter.n)
	}
}

func TestScreeningList_NewestFirstAndCap(t *testing.T) {
	st := newMemStore()
	s := NewScreeningService(st, nil)
	ctx := context.Background()

	var firstID string
	for i := 0; i < MaxScreenings+1; i++ {
		rec, _, err := s.Submit(ctx, "u1", yes(i%8)) // stay below threshold, no gate anyway
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if i == 0 {
			firstID = rec.ID
		}
	}

	list, err := s.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != MaxScreenings {
		t.Fatalf("len = %d; want %d", len(list), MaxScreenings)
	}
	for _, rec := range list {
		if rec.ID == firstID {
			t.Error("oldest screening survived past the cap")
		}
	}
}
