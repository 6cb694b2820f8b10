package jobscheduler

import "time"

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchEvent is one status change in a job dispatch's lifecycle, keyed by
// dispatch id. DateKey carries the ingest date the job targets so operators
// can correlate dispatches with fetch attempts.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	JobPath      string
	DateKey      string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
