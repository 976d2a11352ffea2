package questionnaire

import (
	"github.com/abhisek/delectable/internal/submission"
)

// navigateMsg is sent by the Previous and Next buttons.
type navigateMsg struct {
	forward bool
}

// submitDoneMsg carries the outcome of an asynchronous submission.
type submitDoneMsg struct {
	Result *submission.Result
	Err    error
}
