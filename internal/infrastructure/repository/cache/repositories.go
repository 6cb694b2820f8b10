package cache

import (
	"context"
	"strconv"

	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
	basecache "github.com/slapshotlabs/scoresync/internal/platform/cache"
)

// The decorators below sit between the admin read API and postgres. Writes
// flow through to the inner repository and invalidate the affected keys, so
// an ingest run observes its own writes on the next read.

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	key := teamByIDKey(externalID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "team:list")
	r.cache.Delete(ctx, teamByIDKey(item.ExternalID))
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "team:list")
	r.cache.Delete(ctx, teamByIDKey(item.ExternalID))
	return nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func teamByIDKey(externalID int64) string {
	return "team:id:" + strconv.FormatInt(externalID, 10)
}

type VenueRepository struct {
	next  venue.Repository
	cache *basecache.Store
}

func NewVenueRepository(next venue.Repository, cache *basecache.Store) *VenueRepository {
	return &VenueRepository{next: next, cache: cache}
}

func (r *VenueRepository) List(ctx context.Context) ([]venue.Venue, error) {
	v, err := r.cache.GetOrLoad(ctx, "venue:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]venue.Venue(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]venue.Venue)
	return append([]venue.Venue(nil), items...), nil
}

func (r *VenueRepository) GetByNameKey(ctx context.Context, nameKey string) (venue.Venue, bool, error) {
	key := "venue:key:" + nameKey
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByNameKey(ctx, nameKey)
		if err != nil {
			return nil, err
		}
		return cachedVenueByKey{value: item, exists: exists}, nil
	})
	if err != nil {
		return venue.Venue{}, false, err
	}

	cached, _ := v.(cachedVenueByKey)
	return cached.value, cached.exists, nil
}

func (r *VenueRepository) Insert(ctx context.Context, item venue.Venue) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "venue:list")
	r.cache.Delete(ctx, "venue:key:"+item.NameKey)
	return nil
}

func (r *VenueRepository) Update(ctx context.Context, item venue.Venue) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "venue:list")
	r.cache.Delete(ctx, "venue:key:"+item.NameKey)
	return nil
}

type cachedVenueByKey struct {
	value  venue.Venue
	exists bool
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context, filter game.ListFilter) ([]game.Game, error) {
	key := gameListKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) GetByExternalID(ctx context.Context, externalID int64) (game.Game, bool, error) {
	key := gameByIDKey(externalID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cached.value, cached.exists, nil
}

func (r *GameRepository) CountByState(ctx context.Context) (map[game.State]int, error) {
	v, err := r.cache.GetOrLoad(ctx, "game:count-by-state", func(ctx context.Context) (any, error) {
		counts, err := r.next.CountByState(ctx)
		if err != nil {
			return nil, err
		}
		return cloneStateCounts(counts), nil
	})
	if err != nil {
		return nil, err
	}

	counts, _ := v.(map[game.State]int)
	return cloneStateCounts(counts), nil
}

func (r *GameRepository) Insert(ctx context.Context, item game.Game) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.invalidateGame(ctx, item.ExternalID)
	return nil
}

func (r *GameRepository) Update(ctx context.Context, item game.Game) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidateGame(ctx, item.ExternalID)
	return nil
}

// invalidateGame drops every list variant along with the row key; list keys
// encode the filter, so targeted deletion is not worth the bookkeeping.
func (r *GameRepository) invalidateGame(ctx context.Context, externalID int64) {
	r.cache.Delete(ctx, gameByIDKey(externalID))
	r.cache.Delete(ctx, "game:count-by-state")
	r.cache.DeletePrefix(ctx, "game:list:")
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

func gameByIDKey(externalID int64) string {
	return "game:id:" + strconv.FormatInt(externalID, 10)
}

func gameListKey(filter game.ListFilter) string {
	date := "any"
	if filter.Date != nil {
		date = filter.Date.Format("2006-01-02")
	}
	state := "any"
	if filter.State != nil {
		state = string(*filter.State)
	}
	teamID := "any"
	if filter.TeamExternalID != nil {
		teamID = strconv.FormatInt(*filter.TeamExternalID, 10)
	}

	return "game:list:" + date + ":" + state + ":" + teamID + ":" + strconv.Itoa(filter.Limit)
}

func cloneStateCounts(counts map[game.State]int) map[game.State]int {
	out := make(map[game.State]int, len(counts))
	for state, total := range counts {
		out[state] = total
	}
	return out
}
