package screening

import (
	"errors"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

// answersWithYes builds a fully answered sequence with n "yes" answers.
func answersWithYes(n int) []*bool {
	out := make([]*bool, QuestionCount)
	for i := range out {
		out[i] = boolPtr(i < n)
	}
	return out
}

func TestScore_CountsYesAnswers(t *testing.T) {
	for n := 0; n <= QuestionCount; n++ {
		got, err := Score(answersWithYes(n))
		if err != nil {
			t.Fatalf("Score(%d yes) returned error: %v", n, err)
		}
		if got != n {
			t.Errorf("Score(%d yes) = %d; want %d", n, got, n)
		}
	}
}

func TestScore_RejectsUnanswered(t *testing.T) {
	// One nil entry anywhere must fail.
	for i := 0; i < QuestionCount; i++ {
		a := answersWithYes(QuestionCount)
		a[i] = nil
		if _, err := Score(a); !errors.Is(err, ErrUnanswered) {
			t.Errorf("Score with nil at %d: err = %v; want ErrUnanswered", i, err)
		}
	}
}

func TestScore_RejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 9, 11} {
		a := make([]*bool, n)
		for i := range a {
			a[i] = boolPtr(false)
		}
		if _, err := Score(a); !errors.Is(err, ErrUnanswered) {
			t.Errorf("Score(len=%d): err = %v; want ErrUnanswered", n, err)
		}
	}
}

func TestClassify_BandsPartitionRange(t *testing.T) {
	cases := map[int]Band{
		0:  BandNormal,
		1:  BandNormal,
		2:  BandNormal, // boundary belongs to lower band
		3:  BandSedang,
		4:  BandSedang,
		5:  BandSedang, // boundary
		6:  BandTinggi,
		7:  BandTinggi, // boundary
		8:  BandSangatTinggi,
		9:  BandSangatTinggi,
		10: BandSangatTinggi,
	}
	for score, want := range cases {
		if got := Classify(score).Band; got != want {
			t.Errorf("Classify(%d).Band = %q; want %q", score, got, want)
		}
	}
}

func TestClassify_CarriesStaticRecommendations(t *testing.T) {
	for s := 0; s <= 10; s++ {
		r := Classify(s)
		if len(r.Recommendations) != 3 {
			t.Errorf("Classify(%d): %d recommendations; want 3", s, len(r.Recommendations))
		}
		if r.Description == "" {
			t.Errorf("Classify(%d): empty description", s)
		}
	}
}

func TestClassify_SevereWarningFollowsThreshold(t *testing.T) {
	for s := 0; s <= 10; s++ {
		r := Classify(s)
		want := s >= SevereThreshold
		if r.SevereWarning != want {
			t.Errorf("Classify(%d).SevereWarning = %v; want %v", s, r.SevereWarning, want)
		}
		if IsHighRisk(s) != want {
			t.Errorf("IsHighRisk(%d) = %v; want %v", s, IsHighRisk(s), want)
		}
	}
}

func TestQuestions_FixedShape(t *testing.T) {
	if len(Questions) != QuestionCount {
		t.Fatalf("len(Questions) = %d; want %d", len(Questions), QuestionCount)
	}
	for i, q := range Questions {
		if q == "" {
			t.Errorf("Questions[%d] is empty", i)
		}
	}
}
