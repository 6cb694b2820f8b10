package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type IngestJobConfig struct {
	ScheduleInterval time.Duration
	LiveInterval     time.Duration
	PreGameLead      time.Duration
}

type IngestJobInput struct {
	DateKey string
	Force   bool
}

type IngestJobResult struct {
	Mode             string     `json:"mode"`
	Date             string     `json:"date"`
	LiveGameCount    int        `json:"live_game_count"`
	QueuedCount      int        `json:"queued_count"`
	QueuedOperations []string   `json:"queued_operations"`
	Summary          RunSummary `json:"summary"`
}

// IngestJobService keeps the score pipeline running through the job queue:
// every completed run schedules the next one, tightening the cadence while
// games are live or about to start and backing off on idle days.
type IngestJobService struct {
	scoreSync    *ScoreSyncService
	gameRepo     game.Repository
	queue        JobQueue
	dispatchRepo jobscheduler.Repository
	cfg          IngestJobConfig
	logger       *logging.Logger
	now          func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewIngestJobService(
	scoreSync *ScoreSyncService,
	gameRepo game.Repository,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	cfg IngestJobConfig,
	logger *logging.Logger,
) *IngestJobService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ScheduleInterval <= 0 {
		cfg.ScheduleInterval = 15 * time.Minute
	}
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = 5 * time.Minute
	}
	if cfg.PreGameLead <= 0 {
		cfg.PreGameLead = 15 * time.Minute
	}

	return &IngestJobService{
		scoreSync:    scoreSync,
		gameRepo:     gameRepo,
		queue:        queue,
		dispatchRepo: dispatchRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *IngestJobService) RunScheduledSync(ctx context.Context, input IngestJobInput) (IngestJobResult, error) {
	return s.run(ctx, "scheduled", input, true)
}

func (s *IngestJobService) RunLiveSync(ctx context.Context, input IngestJobInput) (IngestJobResult, error) {
	return s.run(ctx, "live", input, true)
}

// RunSyncDirect executes one sync without chaining follow-up jobs, for
// operator-triggered runs that must not disturb the queue cadence.
func (s *IngestJobService) RunSyncDirect(ctx context.Context, input IngestJobInput) (IngestJobResult, error) {
	return s.run(ctx, "direct", input, false)
}

// Bootstrap seeds the queue with an immediate sync so the chain starts
// without waiting for the first scheduled slot.
func (s *IngestJobService) Bootstrap(ctx context.Context, input IngestJobInput) (IngestJobResult, error) {
	date, err := s.resolveDate(input.DateKey)
	if err != nil {
		return IngestJobResult{}, err
	}

	now := s.now().UTC()
	dateKey := date.Format(dateLayout)
	result := IngestJobResult{
		Mode:             "bootstrap",
		Date:             dateKey,
		QueuedOperations: make([]string, 0, 1),
	}

	if err := s.enqueueScheduled(ctx, dateKey, 0, now); err != nil {
		return IngestJobResult{}, err
	}
	result.QueuedCount++
	result.QueuedOperations = append(result.QueuedOperations, "sync-scores:"+dateKey)

	return result, nil
}

func (s *IngestJobService) run(ctx context.Context, mode string, input IngestJobInput, enqueueNext bool) (IngestJobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestJobService.run")
	defer span.End()

	if s.scoreSync == nil {
		return IngestJobResult{}, fmt.Errorf("%w: score sync service is not configured", ErrDependencyUnavailable)
	}

	date, err := s.resolveDate(input.DateKey)
	if err != nil {
		return IngestJobResult{}, err
	}

	summary, err := s.scoreSync.Run(ctx, RunParams{Date: date, Force: input.Force})
	if err != nil {
		return IngestJobResult{}, fmt.Errorf("run score sync mode=%s: %w", mode, err)
	}

	now := s.now().UTC()
	dateKey := summary.Date
	result := IngestJobResult{
		Mode:             mode,
		Date:             dateKey,
		Summary:          summary,
		QueuedOperations: make([]string, 0, 2),
	}
	if !enqueueNext {
		return result, nil
	}

	games, err := s.gameRepo.List(ctx, game.ListFilter{Date: &date})
	if err != nil {
		return IngestJobResult{}, fmt.Errorf("list games for date=%s: %w", dateKey, err)
	}

	liveCount, nearestStart := analyzeGames(games, now)
	result.LiveGameCount = liveCount

	if liveCount > 0 {
		if err := s.enqueueLive(ctx, dateKey, s.cfg.LiveInterval, now); err != nil {
			return IngestJobResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, "sync-live:"+dateKey)
	} else if nearestStart != nil {
		liveAt := nearestStart.Add(-s.cfg.PreGameLead)
		delay := liveAt.Sub(now)
		if input.Force {
			delay = 0
		} else if delay <= 0 {
			delay = s.cfg.LiveInterval
		}
		if err := s.enqueueLive(ctx, dateKey, delay, now); err != nil {
			return IngestJobResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, "sync-live:"+dateKey)
	}

	scheduleDelay := s.nextScheduleDelay(now, liveCount > 0, nearestStart)
	if err := s.enqueueScheduled(ctx, dateKey, scheduleDelay, now); err != nil {
		return IngestJobResult{}, err
	}
	result.QueuedCount++
	result.QueuedOperations = append(result.QueuedOperations, "sync-scores:"+dateKey)

	return result, nil
}

func (s *IngestJobService) resolveDate(dateKey string) (time.Time, error) {
	dateKey = strings.TrimSpace(dateKey)
	if dateKey == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(dateLayout, dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, dateKey)
	}
	return date, nil
}

func (s *IngestJobService) enqueueScheduled(ctx context.Context, dateKey string, delay time.Duration, now time.Time) error {
	dedupID := dedupKey("sync-scores", dateKey, now.Add(delay), s.cfg.ScheduleInterval)
	payload := map[string]any{
		"date":        dateKey,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/sync-scores", payload, delay, dedupID); err != nil {
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dedupID,
			JobName:      "sync-scores",
			JobPath:      "/v1/internal/jobs/sync-scores",
			DateKey:      dateKey,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now.UTC(),
		})
		return fmt.Errorf("enqueue sync-scores date=%s: %w", dateKey, err)
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    "sync-scores",
		JobPath:    "/v1/internal/jobs/sync-scores",
		DateKey:    dateKey,
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
		OccurredAt: now.UTC(),
	})
	return nil
}

func (s *IngestJobService) enqueueLive(ctx context.Context, dateKey string, delay time.Duration, now time.Time) error {
	dedupID := dedupKey("sync-live", dateKey, now.Add(delay), s.cfg.LiveInterval)
	payload := map[string]any{
		"date":        dateKey,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/sync-live", payload, delay, dedupID); err != nil {
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dedupID,
			JobName:      "sync-live",
			JobPath:      "/v1/internal/jobs/sync-live",
			DateKey:      dateKey,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now.UTC(),
		})
		return fmt.Errorf("enqueue sync-live date=%s: %w", dateKey, err)
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    "sync-live",
		JobPath:    "/v1/internal/jobs/sync-live",
		DateKey:    dateKey,
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
		OccurredAt: now.UTC(),
	})
	return nil
}

func dedupKey(prefix, dateKey string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	dateKey = sanitizeDedupSegment(dateKey)
	return prefix + "-" + dateKey + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *IngestJobService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}

// analyzeGames reports how many games are currently live and the earliest
// future start among games still waiting to begin.
func analyzeGames(items []game.Game, now time.Time) (int, *time.Time) {
	var nearestStart *time.Time
	liveCount := 0
	for _, item := range items {
		if item.State == game.StateLive {
			liveCount++
		}

		if item.State != game.StateScheduled || item.StartTimeUTC == nil {
			continue
		}
		if item.StartTimeUTC.Before(now) {
			continue
		}
		if nearestStart == nil || item.StartTimeUTC.Before(*nearestStart) {
			next := *item.StartTimeUTC
			nearestStart = &next
		}
	}

	return liveCount, nearestStart
}

func (s *IngestJobService) nextScheduleDelay(now time.Time, hasLive bool, nearestStart *time.Time) time.Duration {
	minDelay := time.Minute
	if hasLive {
		return maxDuration(s.cfg.LiveInterval, minDelay)
	}

	if nearestStart != nil {
		liveAt := nearestStart.Add(-s.cfg.PreGameLead)
		delay := liveAt.Sub(now)
		if delay <= 0 {
			return maxDuration(s.cfg.LiveInterval, minDelay)
		}
		return maxDuration(delay, minDelay)
	}

	// Nothing upcoming today; poll rarely until the next slate shows up.
	return maxDuration(s.cfg.ScheduleInterval, 6*time.Hour)
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
