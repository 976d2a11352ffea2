package submission

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/delectable/internal/store"
)

func TestWithAuditRecordsAttempts(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	repo := s.SubmissionRepo()

	client := WithAudit(NewMockClient(errors.New("HTTP 503: down"), nil), repo, "session-1")
	asm := NewAssembler(client)
	ctx := context.Background()

	_, err = asm.Submit(ctx, exampleView(), "PT001")
	require.Error(t, err)
	_, err = asm.Submit(ctx, exampleView(), "PT001")
	require.NoError(t, err)

	entries, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Success)
	assert.Equal(t, 1, entries[0].FieldsWritten)
	assert.Equal(t, "session-1", entries[0].SessionID)
	assert.Equal(t, "PT001", entries[0].CaseID)

	assert.False(t, entries[1].Success)
	assert.Equal(t, "HTTP 503: down", entries[1].ErrorMessage)
}

type failingRepo struct{}

func (failingRepo) Append(context.Context, store.SubmissionEntry) error {
	return errors.New("disk full")
}

func (failingRepo) Recent(context.Context, int) ([]store.SubmissionEntry, error) {
	return nil, nil
}

func (failingRepo) Prune(context.Context, int) (int64, error) {
	return 0, nil
}

func TestWithAuditIgnoresLogFailures(t *testing.T) {
	client := WithAudit(NewMockClient(), failingRepo{}, "s")

	n, err := client.Submit(context.Background(), Record{"record_id": "PT001", "q1": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
