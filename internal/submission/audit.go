package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/untillpro/goutils/logger"

	"github.com/abhisek/delectable/internal/store"
)

// AuditingClient is a decorator that records every submission attempt in
// the submission log.
type AuditingClient struct {
	inner     Client
	repo      store.SubmissionRepo
	sessionID string
}

// WithAudit wraps a Client with submission logging.
func WithAudit(c Client, repo store.SubmissionRepo, sessionID string) Client {
	return &AuditingClient{inner: c, repo: repo, sessionID: sessionID}
}

func (a *AuditingClient) Submit(ctx context.Context, rec Record) (int, error) {
	start := time.Now()

	n, err := a.inner.Submit(ctx, rec)

	entry := store.SubmissionEntry{
		SessionID:     a.sessionID,
		CaseID:        rec.CaseID(),
		FieldsWritten: n,
		Success:       err == nil,
		LatencyMs:     time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	// Log the attempt but don't fail the submission if logging fails.
	if logErr := a.repo.Append(ctx, entry); logErr != nil {
		logger.Warning(fmt.Sprintf("failed to record submission attempt: %v", logErr))
	}

	return n, err
}
