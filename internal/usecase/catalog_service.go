package usecase

import (
	"context"
	"fmt"

	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
)

// CatalogService serves the reference entities the pipeline maintains as a
// side effect of ingesting games.
type CatalogService struct {
	teamRepo  team.Repository
	venueRepo venue.Repository
}

func NewCatalogService(teamRepo team.Repository, venueRepo venue.Repository) *CatalogService {
	return &CatalogService{
		teamRepo:  teamRepo,
		venueRepo: venueRepo,
	}
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, externalID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetTeam")
	defer span.End()

	if externalID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	item, found, err := s.teamRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, externalID)
	}
	return item, nil
}

func (s *CatalogService) ListVenues(ctx context.Context) ([]venue.Venue, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListVenues")
	defer span.End()

	items, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return items, nil
}
