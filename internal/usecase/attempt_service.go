package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
)

const (
	defaultAttemptListLimit = 50
	maxAttemptListLimit     = 200
)

type AttemptListInput struct {
	DateKey string
	Success *bool
	Limit   int
}

// AttemptService exposes the fetch audit trail.
type AttemptService struct {
	attemptRepo fetchattempt.Repository
}

func NewAttemptService(attemptRepo fetchattempt.Repository) *AttemptService {
	return &AttemptService{attemptRepo: attemptRepo}
}

func (s *AttemptService) List(ctx context.Context, input AttemptListInput) ([]fetchattempt.Attempt, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AttemptService.List")
	defer span.End()

	filter := fetchattempt.ListFilter{Success: input.Success, Limit: input.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultAttemptListLimit
	}
	if filter.Limit > maxAttemptListLimit {
		filter.Limit = maxAttemptListLimit
	}

	if dateKey := strings.TrimSpace(input.DateKey); dateKey != "" {
		date, err := time.Parse(dateLayout, dateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, dateKey)
		}
		filter.Date = &date
	}

	items, err := s.attemptRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fetch attempts: %w", err)
	}

	return items, nil
}
