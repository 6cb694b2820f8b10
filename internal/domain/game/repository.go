package game

import (
	"context"
	"time"
)

// ListFilter narrows game listings; nil fields match everything.
type ListFilter struct {
	Date           *time.Time
	State          *State
	TeamExternalID *int64
	Limit          int
}

// Repository describes game persistence needs from use cases. Insert must
// surface ErrDuplicateExternalID on a natural-key collision so callers can
// retry the write as an update.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Game, error)
	GetByExternalID(ctx context.Context, externalID int64) (Game, bool, error)
	CountByState(ctx context.Context) (map[State]int, error)
	Insert(ctx context.Context, item Game) error
	Update(ctx context.Context, item Game) error
}
