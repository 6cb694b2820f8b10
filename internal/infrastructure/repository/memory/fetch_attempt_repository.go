package memory

import (
	"context"
	"sync"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
)

type FetchAttemptRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  []fetchattempt.Attempt
}

func NewFetchAttemptRepository() *FetchAttemptRepository {
	return &FetchAttemptRepository{nextID: 1}
}

func (r *FetchAttemptRepository) Append(_ context.Context, item fetchattempt.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, cloneAttempt(item))

	return nil
}

// List returns attempts newest first.
func (r *FetchAttemptRepository) List(_ context.Context, filter fetchattempt.ListFilter) ([]fetchattempt.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fetchattempt.Attempt, 0, len(r.items))
	for i := len(r.items) - 1; i >= 0; i-- {
		item := r.items[i]
		if filter.Date != nil && !sameCivilDate(item.Date, *filter.Date) {
			continue
		}
		if filter.Success != nil && item.Success != *filter.Success {
			continue
		}
		out = append(out, cloneAttempt(item))
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}

	return out, nil
}

func cloneAttempt(item fetchattempt.Attempt) fetchattempt.Attempt {
	copied := item
	copied.ErrorMessage = copyStringPtr(item.ErrorMessage)
	return copied
}
