package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
	"github.com/slapshotlabs/scoresync/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(ctx, dashboard))
}

type dashboardDTO struct {
	TotalGames       int              `json:"totalGames"`
	GamesByState     map[string]int   `json:"gamesByState"`
	TeamCount        int              `json:"teamCount"`
	VenueCount       int              `json:"venueCount"`
	LastAttempt      *attemptDTO      `json:"lastAttempt,omitempty"`
	RecentFailures   []attemptDTO     `json:"recentFailures"`
	RecentDispatches []jobDispatchDTO `json:"recentDispatches"`
}

type jobDispatchDTO struct {
	DispatchID    string `json:"dispatchId"`
	JobName       string `json:"jobName"`
	JobPath       string `json:"jobPath"`
	Date          string `json:"date,omitempty"`
	Status        string `json:"status"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
	OccurredAtUTC string `json:"occurredAtUtc,omitempty"`
	TraceID       string `json:"traceId,omitempty"`
}

func dashboardToDTO(ctx context.Context, v usecase.Dashboard) dashboardDTO {
	ctx, span := startSpan(ctx, "httpapi.dashboardToDTO")
	defer span.End()

	byState := make(map[string]int, len(v.GameCounts))
	for state, count := range v.GameCounts {
		byState[string(state)] = count
	}

	out := dashboardDTO{
		TotalGames:       v.TotalGames,
		GamesByState:     byState,
		TeamCount:        v.TeamCount,
		VenueCount:       v.VenueCount,
		RecentFailures:   make([]attemptDTO, 0, len(v.RecentFailures)),
		RecentDispatches: make([]jobDispatchDTO, 0, len(v.RecentDispatches)),
	}

	if v.LastAttempt != nil {
		dto := attemptToDTO(ctx, *v.LastAttempt)
		out.LastAttempt = &dto
	}
	for _, item := range v.RecentFailures {
		out.RecentFailures = append(out.RecentFailures, attemptToDTO(ctx, item))
	}
	for _, item := range v.RecentDispatches {
		out.RecentDispatches = append(out.RecentDispatches, jobDispatchToDTO(ctx, item))
	}

	return out
}

func jobDispatchToDTO(ctx context.Context, v jobscheduler.DispatchEvent) jobDispatchDTO {
	ctx, span := startSpan(ctx, "httpapi.jobDispatchToDTO")
	defer span.End()

	dto := jobDispatchDTO{
		DispatchID:   v.DispatchID,
		JobName:      v.JobName,
		JobPath:      v.JobPath,
		Date:         v.DateKey,
		Status:       string(v.Status),
		ErrorMessage: v.ErrorMessage,
		TraceID:      v.TraceID,
	}
	if !v.OccurredAt.IsZero() {
		dto.OccurredAtUTC = v.OccurredAt.UTC().Format(time.RFC3339)
	}

	return dto
}
