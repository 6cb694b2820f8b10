package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
)

type jobDispatchTableModel struct {
	ID               int64          `db:"id"`
	DispatchID       string         `db:"dispatch_id"`
	JobName          string         `db:"job_name"`
	JobPath          string         `db:"job_path"`
	DateKey          string         `db:"date_key"`
	Payload          string         `db:"payload"`
	Status           string         `db:"status"`
	SentAt           *time.Time     `db:"sent_at"`
	CompletedAt      *time.Time     `db:"completed_at"`
	FailedAt         *time.Time     `db:"failed_at"`
	LastError        sql.NullString `db:"last_error"`
	SentTraceID      sql.NullString `db:"sent_trace_id"`
	SentSpanID       sql.NullString `db:"sent_span_id"`
	CompletedTraceID sql.NullString `db:"completed_trace_id"`
	CompletedSpanID  sql.NullString `db:"completed_span_id"`
	FailedTraceID    sql.NullString `db:"failed_trace_id"`
	FailedSpanID     sql.NullString `db:"failed_span_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

func mapJobDispatchRow(row jobDispatchTableModel) (jobscheduler.DispatchEvent, error) {
	payload := map[string]any{}
	if trimmed := strings.TrimSpace(row.Payload); trimmed != "" && trimmed != "{}" {
		if err := jsoniter.UnmarshalFromString(trimmed, &payload); err != nil {
			return jobscheduler.DispatchEvent{}, fmt.Errorf("decode dispatch payload dispatch_id=%s: %w", row.DispatchID, err)
		}
	}

	event := jobscheduler.DispatchEvent{
		DispatchID:   row.DispatchID,
		JobName:      row.JobName,
		JobPath:      row.JobPath,
		DateKey:      row.DateKey,
		Status:       jobscheduler.DispatchStatus(row.Status),
		Payload:      payload,
		ErrorMessage: row.LastError.String,
		OccurredAt:   row.UpdatedAt,
	}

	switch event.Status {
	case jobscheduler.StatusSent:
		if row.SentAt != nil {
			event.OccurredAt = *row.SentAt
		}
		event.TraceID = row.SentTraceID.String
		event.SpanID = row.SentSpanID.String
	case jobscheduler.StatusCompleted:
		if row.CompletedAt != nil {
			event.OccurredAt = *row.CompletedAt
		}
		event.TraceID = row.CompletedTraceID.String
		event.SpanID = row.CompletedSpanID.String
	case jobscheduler.StatusFailed:
		if row.FailedAt != nil {
			event.OccurredAt = *row.FailedAt
		}
		event.TraceID = row.FailedTraceID.String
		event.SpanID = row.FailedSpanID.String
	}

	return event, nil
}

type jobDispatchInsertModel struct {
	DispatchID       string     `db:"dispatch_id"`
	JobName          string     `db:"job_name"`
	JobPath          string     `db:"job_path"`
	DateKey          string     `db:"date_key"`
	Payload          string     `db:"payload"`
	Status           string     `db:"status"`
	SentAt           *time.Time `db:"sent_at"`
	CompletedAt      *time.Time `db:"completed_at"`
	FailedAt         *time.Time `db:"failed_at"`
	LastError        *string    `db:"last_error"`
	SentTraceID      *string    `db:"sent_trace_id"`
	SentSpanID       *string    `db:"sent_span_id"`
	CompletedTraceID *string    `db:"completed_trace_id"`
	CompletedSpanID  *string    `db:"completed_span_id"`
	FailedTraceID    *string    `db:"failed_trace_id"`
	FailedSpanID     *string    `db:"failed_span_id"`
}
