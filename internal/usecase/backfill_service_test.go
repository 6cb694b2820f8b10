package usecase

import (
	"errors"
	"testing"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
)

func TestExpandBackfillRange(t *testing.T) {
	t.Parallel()

	dates, err := expandBackfillRange("2025-09-19", "2025-09-21")
	if err != nil {
		t.Fatalf("expandBackfillRange error: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 days, got=%d", len(dates))
	}
	if dates[0].Format("2006-01-02") != "2025-09-19" || dates[2].Format("2006-01-02") != "2025-09-21" {
		t.Fatalf("unexpected range bounds: %v", dates)
	}

	if _, err := expandBackfillRange("2025-09-21", "2025-09-19"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
	if _, err := expandBackfillRange("", "2025-09-21"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing start, got %v", err)
	}
	if _, err := expandBackfillRange("2025-01-01", "2025-12-31"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized range, got %v", err)
	}
}

func TestNormalizeBackfillWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		requested int
		tasks     int
		want      int
	}{
		{"default", 0, 10, 2},
		{"explicit", 3, 10, 3},
		{"capped", 16, 10, 4},
		{"clamped to tasks", 4, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := normalizeBackfillWorkerCount(tc.requested, tc.tasks); got != tc.want {
				t.Fatalf("unexpected worker count: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestScoreSyncService_Backfill(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = dayWith(makeExternalGame(2025010007))

	result, err := fx.svc.Backfill(t.Context(), BackfillInput{
		StartDate: "2025-09-20",
		EndDate:   "2025-09-22",
	})
	if err != nil {
		t.Fatalf("Backfill error: %v", err)
	}

	if result.DayCount != 3 || result.SuccessCount != 3 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("expected default worker count 2, got=%d", result.WorkerCount)
	}
	if len(result.Days) != 3 {
		t.Fatalf("expected 3 day rows, got=%d", len(result.Days))
	}
	if result.Days[0].Date != "2025-09-20" || result.Days[2].Date != "2025-09-22" {
		t.Fatalf("day rows must be sorted by date, got %+v", result.Days)
	}

	attempts, err := fx.attempts.List(t.Context(), fetchattempt.ListFilter{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("every day needs its own attempt row, got=%d", len(attempts))
	}
}

func TestScoreSyncService_Backfill_FailedDayDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = dayWith(makeExternalGame(2025010007))
	fx.provider.failDates = map[string]error{
		"2025-09-21": ErrProviderNetwork,
	}

	result, err := fx.svc.Backfill(t.Context(), BackfillInput{
		StartDate: "2025-09-20",
		EndDate:   "2025-09-22",
	})
	if err != nil {
		t.Fatalf("Backfill error: %v", err)
	}

	if result.SuccessCount != 2 || result.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	var failed *BackfillDayResult
	for i := range result.Days {
		if result.Days[i].Status == backfillStatusFailed {
			failed = &result.Days[i]
		}
	}
	if failed == nil || failed.Date != "2025-09-21" {
		t.Fatalf("expected 2025-09-21 to fail, got %+v", result.Days)
	}
	if failed.Message == "" {
		t.Fatalf("failed day must carry the error, got %+v", failed)
	}
}
