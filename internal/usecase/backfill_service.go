package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	backfillStatusSuccess = "success"
	backfillStatusFailed  = "failed"

	backfillMaxDays    = 62
	backfillMaxWorkers = 4
)

type BackfillInput struct {
	StartDate  string
	EndDate    string
	Force      bool
	MaxWorkers int
}

type BackfillResult struct {
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	DayCount     int                 `json:"day_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	WorkerCount  int                 `json:"worker_count"`
	Days         []BackfillDayResult `json:"days"`
}

type BackfillDayResult struct {
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	Summary    RunSummary `json:"summary"`
	DurationMs int64      `json:"duration_ms"`
	Message    string     `json:"message,omitempty"`
}

// Backfill replays the pipeline over an inclusive date range with a small
// worker pool. Days run independently: one failed day never stops the
// rest, and every day still writes its own fetch attempt.
func (s *ScoreSyncService) Backfill(ctx context.Context, input BackfillInput) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreSyncService.Backfill")
	defer span.End()

	if s.provider == nil {
		return BackfillResult{}, fmt.Errorf("%w: score provider is not configured", ErrDependencyUnavailable)
	}

	dates, err := expandBackfillRange(input.StartDate, input.EndDate)
	if err != nil {
		return BackfillResult{}, err
	}

	workerCount := normalizeBackfillWorkerCount(input.MaxWorkers, len(dates))
	result := BackfillResult{
		StartDate:   dates[0].Format(dateLayout),
		EndDate:     dates[len(dates)-1].Format(dateLayout),
		DayCount:    len(dates),
		WorkerCount: workerCount,
		Days:        make([]BackfillDayResult, 0, len(dates)),
	}

	rows := make(chan BackfillDayResult, len(dates))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, date := range dates {
		date := date
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := BackfillDayResult{Date: date.Format(dateLayout)}

			summary, runErr := s.Run(ctx, RunParams{Date: date, Force: input.Force})
			row.Summary = summary
			row.DurationMs = time.Since(start).Milliseconds()

			if runErr != nil {
				row.Status = backfillStatusFailed
				row.Message = runErr.Error()
				failedCount.Add(1)
			} else {
				row.Status = backfillStatusSuccess
				successCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return BackfillResult{}, fmt.Errorf("submit day to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Days = append(result.Days, row)
	}
	sort.SliceStable(result.Days, func(i, j int) bool { return result.Days[i].Date < result.Days[j].Date })

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func expandBackfillRange(startKey, endKey string) ([]time.Time, error) {
	startKey = strings.TrimSpace(startKey)
	endKey = strings.TrimSpace(endKey)
	if startKey == "" || endKey == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	start, err := time.Parse(dateLayout, startKey)
	if err != nil {
		return nil, fmt.Errorf("%w: start date must be YYYY-MM-DD, got %q", ErrInvalidInput, startKey)
	}
	end, err := time.Parse(dateLayout, endKey)
	if err != nil {
		return nil, fmt.Errorf("%w: end date must be YYYY-MM-DD, got %q", ErrInvalidInput, endKey)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidInput, endKey, startKey)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > backfillMaxDays {
		return nil, fmt.Errorf("%w: range spans %d days, maximum is %d", ErrInvalidInput, days, backfillMaxDays)
	}

	out := make([]time.Time, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out, nil
}

func normalizeBackfillWorkerCount(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = 2
	}
	if workers > backfillMaxWorkers {
		workers = backfillMaxWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	return workers
}
