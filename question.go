package screening

// QuestionCount is the number of questions in the screening form.
const QuestionCount = 20

// Question is one yes/no prompt of the screening form.
// Index is 1-based and matches the column order of stored records.
type Question struct {
	Index int
	Text  string
}

var questionTexts = [QuestionCount]string{
	"Apakah Sdr sering sakit kepala?",
	"Apakah nafsu makan Sdr menurun?",
	"Apakah Sdr tidak bisa tidur nyenyak?",
	"Apakah Sdr mudah merasa takut?",
	"Apakah tangan Sdr gemetar?",
	"Apakah Sdr merasa cemas, tegang, atau khawatir?",
	"Apakah pencernaan Sdr buruk?",
	"Apakah Sdr mengalami kesulitan untuk berpikir jernih?",
	"Apakah Sdr merasa tidak bahagia?",
	"Apakah Sdr lebih sering menangis dari biasanya?",
	"Apakah Sdr sulit menikmati kegiatan sehari-hari?",
	"Apakah Sdr merasa kesulitan untuk mengambil keputusan?",
	"Apakah hasil kerja sehari-hari Sdr memburuk?",
	"Apakah Sdr merasa tidak bisa melakukan hal yang bermanfaat dalam hidup?",
	"Apakah Sdr kehilangan minat untuk melakukan berbagai macam hal?",
	"Apakah Sdr merasa sebagai orang yang tidak berharga?",
	"Apakah Sdr memiliki pemikiran untuk mengakhiri hidup?",
	"Apakah Sdr merasa lelah sepanjang waktu?",
	"Apakah Sdr merasakan perasaan tidak nyaman di perut?",
	"Apakah Sdr mudah merasa lelah?",
}

// Questions returns the question set in form order.
// The returned slice is a fresh copy and may be modified by the caller.
func Questions() (questions []Question) {
	questions = make([]Question, 0, QuestionCount)
	for i, text := range questionTexts {
		questions = append(questions, Question{Index: i + 1, Text: text})
	}
	return questions
}

// QuestionByText returns the question whose text equals text.
func QuestionByText(text string) (question Question, found bool) {
	for i, t := range questionTexts {
		if t == text {
			return Question{Index: i + 1, Text: t}, true
		}
	}
	return Question{}, false
}
