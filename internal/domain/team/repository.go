package team

import "context"

// Repository describes team persistence needs from use cases. Insert must
// surface ErrDuplicateExternalID on a natural-key collision so callers can
// retry the write as an update.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByExternalID(ctx context.Context, externalID int64) (Team, bool, error)
	Insert(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
}
