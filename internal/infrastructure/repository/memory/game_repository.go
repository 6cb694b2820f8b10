package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[int64]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[int64]game.Game, len(games))
	for _, item := range games {
		items[item.ExternalID] = cloneGame(item)
	}

	return &GameRepository{items: items}
}

func (r *GameRepository) List(_ context.Context, filter game.ListFilter) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.items))
	for _, item := range r.items {
		if !matchesGameFilter(item, filter) {
			continue
		}
		out = append(out, cloneGame(item))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *GameRepository) GetByExternalID(_ context.Context, externalID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[externalID]
	if !ok {
		return game.Game{}, false, nil
	}

	return cloneGame(item), true, nil
}

func (r *GameRepository) CountByState(_ context.Context) (map[game.State]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[game.State]int)
	for _, item := range r.items {
		out[item.State]++
	}

	return out, nil
}

func (r *GameRepository) Insert(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ExternalID]; ok {
		return fmt.Errorf("insert game %d: %w", item.ExternalID, game.ErrDuplicateExternalID)
	}
	r.items[item.ExternalID] = cloneGame(item)

	return nil
}

func (r *GameRepository) Update(_ context.Context, item game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ExternalID]; !ok {
		return fmt.Errorf("game %d not found", item.ExternalID)
	}
	r.items[item.ExternalID] = cloneGame(item)

	return nil
}

func matchesGameFilter(item game.Game, filter game.ListFilter) bool {
	if filter.Date != nil && !sameCivilDate(item.GameDate, *filter.Date) {
		return false
	}
	if filter.State != nil && item.State != *filter.State {
		return false
	}
	if filter.TeamExternalID != nil &&
		item.HomeTeamExternalID != *filter.TeamExternalID &&
		item.AwayTeamExternalID != *filter.TeamExternalID {
		return false
	}

	return true
}

func sameCivilDate(left, right time.Time) bool {
	ly, lm, ld := left.UTC().Date()
	ry, rm, rd := right.UTC().Date()
	return ly == ry && lm == rm && ld == rd
}

func cloneGame(item game.Game) game.Game {
	copied := item
	copied.HomeScore = copyIntPtr(item.HomeScore)
	copied.AwayScore = copyIntPtr(item.AwayScore)
	copied.HomeSOG = copyIntPtr(item.HomeSOG)
	copied.AwaySOG = copyIntPtr(item.AwaySOG)
	copied.HomeRecord = copyStringPtr(item.HomeRecord)
	copied.AwayRecord = copyStringPtr(item.AwayRecord)
	copied.VenueNameKey = copyStringPtr(item.VenueNameKey)
	copied.StartTimeUTC = copyTimePtr(item.StartTimeUTC)
	copied.GameCenterLink = copyStringPtr(item.GameCenterLink)
	copied.TicketsLink = copyStringPtr(item.TicketsLink)
	return copied
}

func copyIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func copyStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func copyTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
