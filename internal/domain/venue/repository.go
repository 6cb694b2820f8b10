package venue

import "context"

// Repository describes venue persistence needs from use cases. Insert must
// surface ErrDuplicateNameKey on a natural-key collision so callers can
// retry the write as an update.
type Repository interface {
	List(ctx context.Context) ([]Venue, error)
	GetByNameKey(ctx context.Context, nameKey string) (Venue, bool, error)
	Insert(ctx context.Context, item Venue) error
	Update(ctx context.Context, item Venue) error
}
