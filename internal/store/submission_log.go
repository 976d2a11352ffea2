package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// SubmissionEntry is one recorded submission attempt.
type SubmissionEntry struct {
	ID            int
	SessionID     string
	CaseID        string
	FieldsWritten int
	Success       bool
	ErrorMessage  string
	LatencyMs     int64
	CreatedAt     time.Time
}

// SubmissionRepo is the append-mostly log of submission attempts.
type SubmissionRepo interface {
	// Append records an attempt. CreatedAt defaults to now.
	Append(ctx context.Context, e SubmissionEntry) error

	// Recent returns up to limit entries, newest first. A limit of 0
	// returns every entry.
	Recent(ctx context.Context, limit int) ([]SubmissionEntry, error)

	// Prune deletes all but the keep most recent entries and returns the
	// number deleted.
	Prune(ctx context.Context, keep int) (int64, error)
}

// submissionRepo implements SubmissionRepo with ent's SQL builder.
type submissionRepo struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *submissionRepo) Append(ctx context.Context, e SubmissionEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query, args := builder().
		Insert(submissionsTableName).
		Columns(colSessionID, colCaseID, colFieldsWritten, colSuccess, colErrorMessage, colLatencyMs, colCreatedAt).
		Values(e.SessionID, e.CaseID, e.FieldsWritten, e.Success, e.ErrorMessage, e.LatencyMs, e.CreatedAt).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}

func (r *submissionRepo) Recent(ctx context.Context, limit int) ([]SubmissionEntry, error) {
	sel := builder().
		Select(colID, colSessionID, colCaseID, colFieldsWritten, colSuccess, colErrorMessage, colLatencyMs, colCreatedAt).
		From(entsql.Table(submissionsTableName)).
		OrderBy(entsql.Desc(colID))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionEntry
	for rows.Next() {
		var e SubmissionEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.CaseID, &e.FieldsWritten, &e.Success, &e.ErrorMessage, &e.LatencyMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func (r *submissionRepo) Prune(ctx context.Context, keep int) (int64, error) {
	// Find the ID threshold: the newest entry that falls outside keep.
	query, args := builder().
		Select(colID).
		From(entsql.Table(submissionsTableName)).
		OrderBy(entsql.Desc(colID)).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err == sql.ErrNoRows {
		return 0, nil // fewer than keep entries exist
	}
	if err != nil {
		return 0, fmt.Errorf("query submissions for prune: %w", err)
	}

	query, args = builder().
		Delete(submissionsTableName).
		Where(entsql.LTE(colID, threshold)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune submissions: %w", err)
	}
	return res.RowsAffected()
}
