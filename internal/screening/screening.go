// Package screening implements the symptom questionnaire: the fixed question
// list, the scoring function, and the severity classification with its static
// recommendations. Classification is the single source of truth for severity;
// dashboard aggregates re-derive bands from raw scores through this package
// instead of trusting stored band strings.
package screening

import "errors"

// QuestionCount is the fixed length of the questionnaire. Order is
// significant for the UI (questions are indexed by position) but the score
// itself is order-independent.
const QuestionCount = 10

// SevereThreshold is the lowest score considered high-risk. The notification
// gate, the dashboard high-risk list, and the severe-warning flag all share
// this constant; do not duplicate the literal.
const SevereThreshold = 8

// Questions is the fixed questionnaire, answered yes/no.
var Questions = [QuestionCount]string{
	"Apakah kamu sering merasa sedih tanpa sebab?",
	"Apakah kamu kehilangan minat pada hal yang biasa kamu nikmati?",
	"Apakah pola tidurmu berubah (terlalu banyak/terlalu sedikit)?",
	"Apakah kamu sering merasa lelah tanpa sebab?",
	"Apakah kamu merasa sulit berkonsentrasi?",
	"Apakah nafsu makanmu berubah signifikan?",
	"Apakah kamu sering merasa cemas atau khawatir berlebihan?",
	"Apakah kamu mudah marah atau tersinggung?",
	"Apakah kamu memiliki pikiran negatif tentang diri sendiri?",
	"Apakah kamu berpikir untuk menyakiti diri sendiri?",
}

// Band is one of the four severity classifications.
type Band string

// The four bands, ordered by severity.
const (
	BandNormal       Band = "Normal"
	BandSedang       Band = "Sedang"
	BandTinggi       Band = "Tinggi"
	BandSangatTinggi Band = "Sangat Tinggi"
)

// Bands lists all bands in ascending severity, for stable iteration in
// aggregates and exports.
var Bands = [4]Band{BandNormal, BandSedang, BandTinggi, BandSangatTinggi}

// ErrUnanswered is returned by Score when the answer sequence is incomplete.
// Submission must be rejected and nothing persisted in that case.
var ErrUnanswered = errors.New("all questions must be answered")

// Result is the classification of a score: the band plus its static
// description and three fixed recommendations. The data is fixed text from
// the product, not computed.
type Result struct {
	Band            Band     `json:"band"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	// SevereWarning is true for scores at or above SevereThreshold. The view
	// layer is required to render crisis resources when set.
	SevereWarning bool `json:"severe_warning"`
}

// Score counts the "yes" answers. Every question must carry an explicit
// answer; a nil entry (or a sequence of the wrong length) yields
// ErrUnanswered. The returned score is in [0, QuestionCount].
func Score(answers []*bool) (int, error) {
	if len(answers) != QuestionCount {
		return 0, ErrUnanswered
	}
	n := 0
	for _, a := range answers {
		if a == nil {
			return 0, ErrUnanswered
		}
		if *a {
			n++
		}
	}
	return n, nil
}

// Classify maps a score in [0,10] to its severity band.
//
// Thresholds are closed intervals and intentionally not equal width:
//
//	0–2  Normal
//	3–5  Sedang
//	6–7  Tinggi
//	8–10 Sangat Tinggi
//
// Boundary values (2, 5, 7) belong to the lower band.
func Classify(score int) Result {
	switch {
	case score <= 2:
		return Result{
			Band:        BandNormal,
			Description: "Gejala sangat rendah. Tetap jaga pola hidup sehat dan rutin cek kondisi mentalmu.",
			Recommendations: []string{
				"Tidur cukup 7–8 jam",
				"Journaling sederhana",
				"Kurangi screen-time",
			},
		}
	case score <= 5:
		return Result{
			Band:        BandSedang,
			Description: "Ada beberapa gejala emosional. Kamu mungkin sedang lelah atau tertekan.",
			Recommendations: []string{
				"Lakukan deep breathing 5 menit",
				"Berbicara dengan teman dekat",
				"Kurangi beban tugas jika memungkinkan",
			},
		}
	case score <= 7:
		return Result{
			Band:        BandTinggi,
			Description: "Indikasi stres atau kecemasan cukup tinggi. Sangat disarankan melakukan self-care lebih intens.",
			Recommendations: []string{
				"Meditasi 10 menit",
				"Batasi media sosial 24 jam",
				"Olahraga ringan 15 menit",
			},
		}
	default:
		return Result{
			Band:        BandSangatTinggi,
			Description: "Gejala emosional serius terdeteksi. Pertimbangkan berkonsultasi dengan profesional.",
			Recommendations: []string{
				"Hubungi teman/keluarga terdekat",
				"Jangan menyendiri terlalu lama",
				"Cari bantuan profesional secepatnya",
			},
			SevereWarning: true,
		}
	}
}

// IsHighRisk reports whether a score is at or above the severe threshold.
func IsHighRisk(score int) bool { return score >= SevereThreshold }
