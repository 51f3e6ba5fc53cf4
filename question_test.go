package screening_test

import (
	"testing"

	"github.com/Jumpaku/go-screening"
)

func TestQuestions(t *testing.T) {
	qs := screening.Questions()
	if len(qs) != screening.QuestionCount {
		t.Fatalf("len(Questions()) = %d, want %d", len(qs), screening.QuestionCount)
	}
	for i, q := range qs {
		if q.Index != i+1 {
			t.Fatalf("Questions()[%d].Index = %d, want %d", i, q.Index, i+1)
		}
		if q.Text == "" {
			t.Fatalf("Questions()[%d].Text is empty", i)
		}
	}
	if got, want := qs[0].Text, "Apakah Sdr sering sakit kepala?"; got != want {
		t.Fatalf("first question = %q, want %q", got, want)
	}
	if got, want := qs[19].Text, "Apakah Sdr mudah merasa lelah?"; got != want {
		t.Fatalf("last question = %q, want %q", got, want)
	}
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	qs := screening.Questions()
	qs[0].Text = "changed"
	if got := screening.Questions()[0].Text; got == "changed" {
		t.Fatalf("Questions() shares its backing array with callers")
	}
}

func TestQuestionByText(t *testing.T) {
	q, found := screening.QuestionByText("Apakah tangan Sdr gemetar?")
	if !found || q.Index != 5 {
		t.Fatalf("QuestionByText() = (%v, %v), want index 5", q, found)
	}
	if _, found := screening.QuestionByText("unknown"); found {
		t.Fatalf("QuestionByText(unknown) found = true, want false")
	}
}
