package form

import (
	"time"

	"github.com/Jumpaku/go-screening"
)

// Response is one form response mapped to the screening question order.
// Questions left blank or answered with an unknown value are AnswerUnset.
type Response struct {
	ResponseID        string
	RespondentEmail   string
	CreateTime        time.Time
	LastSubmittedTime time.Time
	Answers           []screening.Answer
}
