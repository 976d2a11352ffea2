package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const submissionsTableName = "submissions"

// Columns of the submissions table.
const (
	colID            = "id"
	colSessionID     = "session_id"
	colCaseID        = "case_id"
	colFieldsWritten = "fields_written"
	colSuccess       = "success"
	colErrorMessage  = "error_message"
	colLatencyMs     = "latency_ms"
	colCreatedAt     = "created_at"
)

var submissionColumns = []*schema.Column{
	{Name: colID, Type: field.TypeInt, Increment: true},
	{Name: colSessionID, Type: field.TypeString},
	{Name: colCaseID, Type: field.TypeString},
	{Name: colFieldsWritten, Type: field.TypeInt, Default: 0},
	{Name: colSuccess, Type: field.TypeBool},
	{Name: colErrorMessage, Type: field.TypeString, Default: ""},
	{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
	{Name: colCreatedAt, Type: field.TypeTime},
}

// submissionsTable records every submission attempt. Answers are not
// stored, only metadata about the attempt.
var submissionsTable = &schema.Table{
	Name:       submissionsTableName,
	Columns:    submissionColumns,
	PrimaryKey: []*schema.Column{submissionColumns[0]},
	Indexes: []*schema.Index{
		{Name: "submission_case_id", Columns: []*schema.Column{submissionColumns[2]}},
		{Name: "submission_created_at", Columns: []*schema.Column{submissionColumns[7]}},
	},
}

var tables = []*schema.Table{submissionsTable}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
