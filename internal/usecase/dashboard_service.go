package usecase

import (
	"context"
	"fmt"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
	"github.com/sourcegraph/conc/pool"
)

const dashboardRecentLimit = 10

// Dashboard is the operator's view of the pipeline: stored volumes, the
// lifecycle spread, the latest audit rows and the most recent queue
// dispatches.
type Dashboard struct {
	GameCounts       map[game.State]int
	TotalGames       int
	TeamCount        int
	VenueCount       int
	LastAttempt      *fetchattempt.Attempt
	RecentFailures   []fetchattempt.Attempt
	RecentDispatches []jobscheduler.DispatchEvent
}

type DashboardService struct {
	gameRepo     game.Repository
	teamRepo     team.Repository
	venueRepo    venue.Repository
	attemptRepo  fetchattempt.Repository
	dispatchRepo jobscheduler.Repository
}

func NewDashboardService(
	gameRepo game.Repository,
	teamRepo team.Repository,
	venueRepo venue.Repository,
	attemptRepo fetchattempt.Repository,
	dispatchRepo jobscheduler.Repository,
) *DashboardService {
	return &DashboardService{
		gameRepo:     gameRepo,
		teamRepo:     teamRepo,
		venueRepo:    venueRepo,
		attemptRepo:  attemptRepo,
		dispatchRepo: dispatchRepo,
	}
}

func (s *DashboardService) Get(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	var (
		counts     map[game.State]int
		teams      []team.Team
		venues     []venue.Venue
		latest     []fetchattempt.Attempt
		failures   []fetchattempt.Attempt
		dispatches []jobscheduler.DispatchEvent
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		counts, err = s.gameRepo.CountByState(ctx)
		if err != nil {
			return fmt.Errorf("count games by state: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		teams, err = s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		venues, err = s.venueRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list venues: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		latest, err = s.attemptRepo.List(ctx, fetchattempt.ListFilter{Limit: 1})
		if err != nil {
			return fmt.Errorf("list latest attempt: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		failed := false
		var err error
		failures, err = s.attemptRepo.List(ctx, fetchattempt.ListFilter{Success: &failed, Limit: dashboardRecentLimit})
		if err != nil {
			return fmt.Errorf("list failed attempts: %w", err)
		}
		return nil
	})
	if s.dispatchRepo != nil {
		p.Go(func(ctx context.Context) error {
			var err error
			dispatches, err = s.dispatchRepo.ListRecent(ctx, dashboardRecentLimit)
			if err != nil {
				return fmt.Errorf("list recent dispatches: %w", err)
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	out := Dashboard{
		GameCounts:       counts,
		TotalGames:       total,
		TeamCount:        len(teams),
		VenueCount:       len(venues),
		RecentFailures:   failures,
		RecentDispatches: dispatches,
	}
	if len(latest) > 0 {
		out.LastAttempt = &latest[0]
	}

	return out, nil
}
