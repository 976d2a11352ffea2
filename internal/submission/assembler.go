package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/untillpro/goutils/logger"
)

// Client sends a finished record to the remote API and returns the number
// of answer fields written.
type Client interface {
	Submit(ctx context.Context, rec Record) (int, error)
}

// Result describes an accepted submission.
type Result struct {
	CaseID        string
	FieldsWritten int
}

// Assembler builds records and hands them to a Client. It never retries;
// a retry is a new user request.
type Assembler struct {
	client Client
}

// NewAssembler returns an Assembler sending through client.
func NewAssembler(client Client) *Assembler {
	return &Assembler{client: client}
}

// Submit builds the record for caseID from v and sends it.
func (a *Assembler) Submit(ctx context.Context, v View, caseID string) (*Result, error) {
	rec, err := BuildRecord(v, caseID)
	if err != nil {
		return nil, err
	}
	return a.Send(ctx, rec)
}

// Send transmits an already built record. Any client failure is reported
// as a TransportFailure.
func (a *Assembler) Send(ctx context.Context, rec Record) (*Result, error) {
	caseID := rec.CaseID()
	if caseID == "" {
		return nil, &Error{Kind: MissingCaseID}
	}

	if _, err := a.client.Submit(ctx, rec); err != nil {
		var se *Error
		if !errors.As(err, &se) {
			se = &Error{Kind: TransportFailure, Err: err}
		}
		logger.Error(fmt.Sprintf("submit record %s: %v", caseID, se))
		return nil, se
	}

	res := &Result{CaseID: caseID, FieldsWritten: rec.FieldCount()}
	logger.Info(fmt.Sprintf("record %s submitted, %d fields", caseID, res.FieldsWritten))
	return res, nil
}

// Status renders the outcome of a submission as a user-facing message.
func Status(res *Result, err error) string {
	if err != nil {
		var se *Error
		if errors.As(err, &se) && se.Kind == MissingCaseID {
			return "Error: Please enter patient code"
		}
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("Record submitted (id = %s)\nFields completed = %d", res.CaseID, res.FieldsWritten)
}
