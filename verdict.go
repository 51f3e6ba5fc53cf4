package screening

import "fmt"

// Verdict is the screening outcome.
type Verdict int

const (
	VerdictNegative Verdict = iota
	VerdictPositive
)

const (
	LabelPositive = "Ada gangguan mental health"
	LabelNegative = "Tidak ada gangguan mental health"
)

// VerdictFromOutput converts a binary classifier output.
func VerdictFromOutput(output int) (verdict Verdict, err error) {
	switch output {
	case 0:
		return VerdictNegative, nil
	case 1:
		return VerdictPositive, nil
	}
	return VerdictNegative, fmt.Errorf("classifier output %d is not binary: %w", output, ErrInvalidVerdict)
}

func (v Verdict) Positive() bool {
	return v == VerdictPositive
}

// Label returns the human-readable verdict stored in records.
func (v Verdict) Label() string {
	if v.Positive() {
		return LabelPositive
	}
	return LabelNegative
}

func (v Verdict) String() string {
	return v.Label()
}

// Message returns the markdown shown to the respondent along with the verdict.
func (v Verdict) Message() string {
	if v.Positive() {
		return "### ⚠️ Prediksi: " + v.Label() + "\n\n" +
			"Kami menyarankan Anda untuk berkonsultasi dengan profesional kesehatan mental. " +
			"Ingat, mencari bantuan adalah tanda kekuatan, bukan kelemahan."
	}
	return "### 🌟 Prediksi: " + v.Label() + "\n\n" +
		"Anda tampaknya dalam kondisi mental yang baik. Tetap jaga kesehatan mental Anda!"
}
