package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
)

const (
	defaultGameListLimit = 100
	maxGameListLimit     = 500
)

type GameListInput struct {
	DateKey        string
	State          string
	TeamExternalID int64
	Limit          int
}

type GameDetails struct {
	Game       game.Game
	HomeTeam   *team.Team
	AwayTeam   *team.Team
	Venue      *venue.Venue
	Broadcasts []broadcast.Broadcast
}

type GameService struct {
	gameRepo      game.Repository
	teamRepo      team.Repository
	venueRepo     venue.Repository
	broadcastRepo broadcast.Repository
}

func NewGameService(
	gameRepo game.Repository,
	teamRepo team.Repository,
	venueRepo venue.Repository,
	broadcastRepo broadcast.Repository,
) *GameService {
	return &GameService{
		gameRepo:      gameRepo,
		teamRepo:      teamRepo,
		venueRepo:     venueRepo,
		broadcastRepo: broadcastRepo,
	}
}

func (s *GameService) List(ctx context.Context, input GameListInput) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.List")
	defer span.End()

	filter := game.ListFilter{Limit: input.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultGameListLimit
	}
	if filter.Limit > maxGameListLimit {
		filter.Limit = maxGameListLimit
	}

	if dateKey := strings.TrimSpace(input.DateKey); dateKey != "" {
		date, err := time.Parse(dateLayout, dateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, dateKey)
		}
		filter.Date = &date
	}

	if raw := strings.TrimSpace(input.State); raw != "" {
		state, ok := game.ParseState(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown game state %q", ErrInvalidInput, raw)
		}
		filter.State = &state
	}

	if input.TeamExternalID > 0 {
		teamID := input.TeamExternalID
		filter.TeamExternalID = &teamID
	}

	items, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return items, nil
}

func (s *GameService) GetDetails(ctx context.Context, externalID int64) (GameDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.GetDetails")
	defer span.End()

	if externalID <= 0 {
		return GameDetails{}, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	item, found, err := s.gameRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return GameDetails{}, fmt.Errorf("get game by id: %w", err)
	}
	if !found {
		return GameDetails{}, fmt.Errorf("%w: game=%d", ErrNotFound, externalID)
	}

	details := GameDetails{Game: item}

	if home, ok, err := s.teamRepo.GetByExternalID(ctx, item.HomeTeamExternalID); err != nil {
		return GameDetails{}, fmt.Errorf("get home team: %w", err)
	} else if ok {
		details.HomeTeam = &home
	}

	if away, ok, err := s.teamRepo.GetByExternalID(ctx, item.AwayTeamExternalID); err != nil {
		return GameDetails{}, fmt.Errorf("get away team: %w", err)
	} else if ok {
		details.AwayTeam = &away
	}

	if item.VenueNameKey != nil {
		if v, ok, err := s.venueRepo.GetByNameKey(ctx, *item.VenueNameKey); err != nil {
			return GameDetails{}, fmt.Errorf("get venue: %w", err)
		} else if ok {
			details.Venue = &v
		}
	}

	rows, err := s.broadcastRepo.ListForGame(ctx, externalID)
	if err != nil {
		return GameDetails{}, fmt.Errorf("list broadcasts: %w", err)
	}
	details.Broadcasts = rows

	return details, nil
}
