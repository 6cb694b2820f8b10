package memory

import (
	"context"
	"sync"

	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
)

type BroadcastRepository struct {
	mu    sync.RWMutex
	items map[int64][]broadcast.Broadcast
}

func NewBroadcastRepository() *BroadcastRepository {
	return &BroadcastRepository{items: make(map[int64][]broadcast.Broadcast)}
}

func (r *BroadcastRepository) ListForGame(_ context.Context, gameExternalID int64) ([]broadcast.Broadcast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.items[gameExternalID]
	out := make([]broadcast.Broadcast, 0, len(rows))
	out = append(out, rows...)

	return out, nil
}

func (r *BroadcastRepository) ReplaceForGame(_ context.Context, gameExternalID int64, rows []broadcast.Broadcast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(rows) == 0 {
		delete(r.items, gameExternalID)
		return nil
	}
	r.items[gameExternalID] = append([]broadcast.Broadcast(nil), rows...)

	return nil
}
