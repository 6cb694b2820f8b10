package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/slapshotlabs/scoresync/internal/domain/venue"
)

type VenueRepository struct {
	mu    sync.RWMutex
	items map[string]venue.Venue
}

func NewVenueRepository(venues []venue.Venue) *VenueRepository {
	items := make(map[string]venue.Venue, len(venues))
	for _, item := range venues {
		items[item.NameKey] = item
	}

	return &VenueRepository{items: items}
}

func (r *VenueRepository) List(_ context.Context) ([]venue.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]venue.Venue, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NameKey < out[j].NameKey })

	return out, nil
}

func (r *VenueRepository) GetByNameKey(_ context.Context, nameKey string) (venue.Venue, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[nameKey]
	if !ok {
		return venue.Venue{}, false, nil
	}

	return item, true, nil
}

func (r *VenueRepository) Insert(_ context.Context, item venue.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.NameKey]; ok {
		return fmt.Errorf("insert venue %s: %w", item.NameKey, venue.ErrDuplicateNameKey)
	}
	r.items[item.NameKey] = item

	return nil
}

func (r *VenueRepository) Update(_ context.Context, item venue.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.NameKey]; !ok {
		return fmt.Errorf("venue %s not found", item.NameKey)
	}
	r.items[item.NameKey] = item

	return nil
}
