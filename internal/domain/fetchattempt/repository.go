package fetchattempt

import (
	"context"
	"time"
)

// ListFilter narrows attempt listings; nil fields match everything.
type ListFilter struct {
	Date    *time.Time
	Success *bool
	Limit   int
}

// Repository describes attempt persistence needs from use cases. Append
// never mutates existing rows.
type Repository interface {
	Append(ctx context.Context, item Attempt) error
	List(ctx context.Context, filter ListFilter) ([]Attempt, error)
}
