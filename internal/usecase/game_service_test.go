package usecase

import (
	"errors"
	"testing"

	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/infrastructure/repository/memory"
)

func newGameServiceFixture(t *testing.T) (*GameService, *memory.BroadcastRepository) {
	t.Helper()

	games := memory.NewGameRepository(memory.SeedGames())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	venues := memory.NewVenueRepository(memory.SeedVenues())
	broadcasts := memory.NewBroadcastRepository()

	return NewGameService(games, teams, venues, broadcasts), broadcasts
}

func TestGameService_List_FiltersByDateAndState(t *testing.T) {
	t.Parallel()

	svc, _ := newGameServiceFixture(t)

	items, err := svc.List(t.Context(), GameListInput{DateKey: "2025-09-21"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 1 || items[0].ExternalID != 2025010006 {
		t.Fatalf("unexpected date filter result: %+v", items)
	}

	items, err = svc.List(t.Context(), GameListInput{State: "scheduled"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 1 || items[0].State != game.StateScheduled {
		t.Fatalf("unexpected state filter result: %+v", items)
	}

	items, err = svc.List(t.Context(), GameListInput{TeamExternalID: memory.TeamIDMapleLeaf})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 1 || items[0].HomeTeamExternalID != memory.TeamIDMapleLeaf {
		t.Fatalf("unexpected team filter result: %+v", items)
	}
}

func TestGameService_List_RejectsBadInput(t *testing.T) {
	t.Parallel()

	svc, _ := newGameServiceFixture(t)

	if _, err := svc.List(t.Context(), GameListInput{DateKey: "21-09-2025"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
	if _, err := svc.List(t.Context(), GameListInput{State: "OVERTIME"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown state, got %v", err)
	}
}

func TestGameService_GetDetails(t *testing.T) {
	t.Parallel()

	svc, broadcasts := newGameServiceFixture(t)

	seed := []broadcast.Broadcast{
		{GameExternalID: 2025010006, Network: "SN", CountryCode: "CA", Market: "N", SequenceNumber: 1},
	}
	if err := broadcasts.ReplaceForGame(t.Context(), 2025010006, seed); err != nil {
		t.Fatalf("seed broadcasts: %v", err)
	}

	details, err := svc.GetDetails(t.Context(), 2025010006)
	if err != nil {
		t.Fatalf("GetDetails error: %v", err)
	}

	if details.Game.ExternalID != 2025010006 {
		t.Fatalf("unexpected game: %+v", details.Game)
	}
	if details.HomeTeam == nil || details.HomeTeam.Abbrev != "TOR" {
		t.Fatalf("unexpected home team: %+v", details.HomeTeam)
	}
	if details.AwayTeam == nil || details.AwayTeam.Abbrev != "OTT" {
		t.Fatalf("unexpected away team: %+v", details.AwayTeam)
	}
	if details.Venue == nil || details.Venue.NameKey != "scotiabank-arena" {
		t.Fatalf("unexpected venue: %+v", details.Venue)
	}
	if len(details.Broadcasts) != 1 || details.Broadcasts[0].Network != "SN" {
		t.Fatalf("unexpected broadcasts: %+v", details.Broadcasts)
	}
}

func TestGameService_GetDetails_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newGameServiceFixture(t)

	if _, err := svc.GetDetails(t.Context(), 2025999999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetDetails(t.Context(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
