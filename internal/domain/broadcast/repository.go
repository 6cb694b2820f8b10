package broadcast

import "context"

// Repository describes broadcast persistence needs from use cases.
// ReplaceForGame swaps a game's whole listing set atomically; an empty
// items slice clears it.
type Repository interface {
	ListForGame(ctx context.Context, gameExternalID int64) ([]Broadcast, error)
	ReplaceForGame(ctx context.Context, gameExternalID int64, items []Broadcast) error
}
