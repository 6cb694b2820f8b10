package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
)

func TestDedupKey_UsesQStashSafeFormat(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, time.September, 21, 4, 25, 42, 0, time.UTC)
	got := dedupKey("sync-scores", "2025-09-21", at, 15*time.Minute)

	if strings.Contains(got, ":") {
		t.Fatalf("dedup key must not contain colon, got=%q", got)
	}

	want := "sync-scores-2025-09-21-20250921T041500Z"
	if got != want {
		t.Fatalf("unexpected dedup key: got=%q want=%q", got, want)
	}
}

func TestSanitizeDedupSegment_EmptyFallback(t *testing.T) {
	t.Parallel()

	if got := sanitizeDedupSegment(" \t "); got != "unknown" {
		t.Fatalf("unexpected sanitize fallback: got=%q want=%q", got, "unknown")
	}
}

func TestAnalyzeGames(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 21, 18, 0, 0, 0, time.UTC)
	soon := time.Date(2025, 9, 21, 21, 0, 0, 0, time.UTC)
	later := time.Date(2025, 9, 21, 23, 0, 0, 0, time.UTC)
	past := time.Date(2025, 9, 21, 15, 0, 0, 0, time.UTC)

	items := []game.Game{
		{ExternalID: 1, State: game.StateLive, StartTimeUTC: &past},
		{ExternalID: 2, State: game.StateScheduled, StartTimeUTC: &later},
		{ExternalID: 3, State: game.StateScheduled, StartTimeUTC: &soon},
		{ExternalID: 4, State: game.StateFinal, StartTimeUTC: &past},
		{ExternalID: 5, State: game.StateScheduled},
	}

	liveCount, nearest := analyzeGames(items, now)
	if liveCount != 1 {
		t.Fatalf("expected 1 live game, got=%d", liveCount)
	}
	if nearest == nil || !nearest.Equal(soon) {
		t.Fatalf("expected nearest start %v, got %v", soon, nearest)
	}

	liveCount, nearest = analyzeGames([]game.Game{{ExternalID: 4, State: game.StateFinal}}, now)
	if liveCount != 0 || nearest != nil {
		t.Fatalf("finished slate must report nothing upcoming, got live=%d nearest=%v", liveCount, nearest)
	}
}

func TestIngestJobService_RunScheduledSync_ChainsNextJobs(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	live := makeExternalGame(2025010007)
	live.GameState = "LIVE"
	live.HomeTeam.Score = intPtr(2)
	live.AwayTeam.Score = intPtr(1)
	fx.provider.day = dayWith(live)

	queue := &recordingQueue{}
	svc := NewIngestJobService(fx.svc, fx.games, queue, nil, IngestJobConfig{}, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 9, 21, 18, 30, 0, 0, time.UTC) }

	result, err := svc.RunScheduledSync(t.Context(), IngestJobInput{DateKey: "2025-09-21"})
	if err != nil {
		t.Fatalf("RunScheduledSync error: %v", err)
	}

	if result.Mode != "scheduled" || result.Date != "2025-09-21" {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if result.Summary.Inserted != 1 {
		t.Fatalf("expected the sync to insert the game, got %+v", result.Summary)
	}
	if result.LiveGameCount != 1 {
		t.Fatalf("expected 1 live game, got=%d", result.LiveGameCount)
	}
	if result.QueuedCount != 2 {
		t.Fatalf("expected live + scheduled follow-ups, got %+v", result)
	}

	calls := queue.snapshot()
	if len(calls) != 2 {
		t.Fatalf("expected 2 enqueues, got=%d", len(calls))
	}
	if calls[0].path != "/v1/internal/jobs/sync-live" || calls[0].delay != 5*time.Minute {
		t.Fatalf("unexpected live enqueue: %+v", calls[0])
	}
	if calls[1].path != "/v1/internal/jobs/sync-scores" || calls[1].delay != 5*time.Minute {
		t.Fatalf("unexpected scheduled enqueue: %+v", calls[1])
	}
	if !strings.HasPrefix(calls[0].dedupID, "sync-live-2025-09-21-") {
		t.Fatalf("unexpected dedup id: %q", calls[0].dedupID)
	}
}

func TestIngestJobService_RunSyncDirect_LeavesQueueAlone(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = dayWith(makeExternalGame(2025010007))

	queue := &recordingQueue{}
	svc := NewIngestJobService(fx.svc, fx.games, queue, nil, IngestJobConfig{}, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 9, 21, 18, 30, 0, 0, time.UTC) }

	result, err := svc.RunSyncDirect(t.Context(), IngestJobInput{DateKey: "2025-09-21"})
	if err != nil {
		t.Fatalf("RunSyncDirect error: %v", err)
	}

	if result.QueuedCount != 0 {
		t.Fatalf("direct runs must not enqueue, got %+v", result)
	}
	if calls := queue.snapshot(); len(calls) != 0 {
		t.Fatalf("expected empty queue, got %+v", calls)
	}
}

func TestIngestJobService_RejectsMalformedDate(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	svc := NewIngestJobService(fx.svc, fx.games, &recordingQueue{}, nil, IngestJobConfig{}, logging.NewNop())

	_, err := svc.RunScheduledSync(t.Context(), IngestJobInput{DateKey: "09/21/2025"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type queuedJob struct {
	path    string
	delay   time.Duration
	dedupID string
}

type recordingQueue struct {
	mu    sync.Mutex
	calls []queuedJob
}

func (q *recordingQueue) Enqueue(_ context.Context, path string, _ any, delay time.Duration, deduplicationID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.calls = append(q.calls, queuedJob{path: path, delay: delay, dedupID: deduplicationID})
	return nil
}

func (q *recordingQueue) snapshot() []queuedJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]queuedJob(nil), q.calls...)
}
