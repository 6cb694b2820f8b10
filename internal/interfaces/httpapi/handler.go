package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
	"github.com/slapshotlabs/scoresync/internal/usecase"
)

type Handler struct {
	gameService      *usecase.GameService
	catalogService   *usecase.CatalogService
	attemptService   *usecase.AttemptService
	dashboardService *usecase.DashboardService
	scoreSyncService *usecase.ScoreSyncService
	ingestJobService *usecase.IngestJobService
	jobDispatchRepo  jobscheduler.Repository
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	catalogService *usecase.CatalogService,
	attemptService *usecase.AttemptService,
	dashboardService *usecase.DashboardService,
	scoreSyncService *usecase.ScoreSyncService,
	ingestJobService *usecase.IngestJobService,
	jobDispatchRepo jobscheduler.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:      gameService,
		catalogService:   catalogService,
		attemptService:   attemptService,
		dashboardService: dashboardService,
		scoreSyncService: scoreSyncService,
		ingestJobService: ingestJobService,
		jobDispatchRepo:  jobDispatchRepo,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func parseInt64Path(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func parseOptionalInt64Query(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func parseOptionalIntQuery(r *http.Request, name string) (int, error) {
	value, err := parseOptionalInt64Query(r, name)
	return int(value), err
}

func parseOptionalBoolQuery(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return &value, nil
}
