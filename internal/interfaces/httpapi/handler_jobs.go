package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/slapshotlabs/scoresync/internal/domain/jobscheduler"
	"github.com/slapshotlabs/scoresync/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

var internalJobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

type internalJobSyncRequest struct {
	Date       string `json:"date"`
	Force      bool   `json:"force"`
	DispatchID string `json:"dispatch_id"`
}

type internalJobBackfillRequest struct {
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Force      bool   `json:"force"`
	MaxWorkers int    `json:"max_workers" validate:"gte=0,lte=8"`
	DispatchID string `json:"dispatch_id"`
}

func (h *Handler) RunSyncScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScoresJob")
	defer span.End()

	if h.ingestJobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingest job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	h.runIngestJob(ctx, w, r, "sync-scores", h.ingestJobService.RunScheduledSync)
}

func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	if h.ingestJobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingest job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	h.runIngestJob(ctx, w, r, "sync-live", h.ingestJobService.RunLiveSync)
}

func (h *Handler) RunBootstrapJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBootstrapJob")
	defer span.End()

	if h.ingestJobService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingest job service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	h.runIngestJob(ctx, w, r, "bootstrap", h.ingestJobService.Bootstrap)
}

func (h *Handler) RunBackfillJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfillJob")
	defer span.End()

	if h.scoreSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: score sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalJobBackfillRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	payload := map[string]any{
		"start_date":  req.StartDate,
		"end_date":    req.EndDate,
		"force":       req.Force,
		"max_workers": req.MaxWorkers,
	}

	result, err := h.scoreSyncService.Backfill(ctx, usecase.BackfillInput{
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Force:      req.Force,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.recordInternalJobDispatch(ctx, req.DispatchID, jobscheduler.DispatchEvent{
			JobName:      "backfill",
			JobPath:      "/v1/internal/jobs/backfill",
			DateKey:      req.StartDate,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run backfill job failed", "start_date", req.StartDate, "end_date", req.EndDate, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req.DispatchID, jobscheduler.DispatchEvent{
		JobName:    "backfill",
		JobPath:    "/v1/internal/jobs/backfill",
		DateKey:    result.StartDate,
		Status:     jobscheduler.StatusCompleted,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

// runIngestJob is the shared body of the single-date job routes: decode the
// request, run the job, record the dispatch outcome, respond.
func (h *Handler) runIngestJob(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	jobName string,
	run func(context.Context, usecase.IngestJobInput) (usecase.IngestJobResult, error),
) {
	req, err := decodeInternalJobSyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	jobPath := "/v1/internal/jobs/" + jobName
	result, err := run(ctx, usecase.IngestJobInput{
		DateKey: req.Date,
		Force:   req.Force,
	})
	if err != nil {
		h.recordInternalJobDispatch(ctx, req.DispatchID, jobscheduler.DispatchEvent{
			JobName:      jobName,
			JobPath:      jobPath,
			DateKey:      req.Date,
			Status:       jobscheduler.StatusFailed,
			Payload:      buildInternalJobPayload(req),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run ingest job failed", "job", jobName, "date", req.Date, "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req.DispatchID, jobscheduler.DispatchEvent{
		JobName:    jobName,
		JobPath:    jobPath,
		DateKey:    result.Date,
		Status:     jobscheduler.StatusCompleted,
		Payload:    buildInternalJobPayload(req),
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeInternalJobSyncRequest(r *http.Request) (internalJobSyncRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req internalJobSyncRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return internalJobSyncRequest{}, nil
		}
		return internalJobSyncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func decodeInternalJobBackfillRequest(r *http.Request) (internalJobBackfillRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req internalJobBackfillRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return internalJobBackfillRequest{}, nil
		}
		return internalJobBackfillRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func (h *Handler) recordInternalJobDispatch(ctx context.Context, requestDispatchID string, event jobscheduler.DispatchEvent) {
	if h.jobDispatchRepo == nil {
		return
	}

	dispatchID := strings.TrimSpace(requestDispatchID)
	if dispatchID == "" {
		dispatchID = buildManualDispatchID(event.JobName, event.DateKey, event.OccurredAt)
	}
	event.DispatchID = dispatchID

	traceID, spanID := httpTraceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID

	if err := h.jobDispatchRepo.UpsertEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "record internal job dispatch failed",
			"dispatch_id", event.DispatchID,
			"job_name", event.JobName,
			"status", event.Status,
			"error", err,
		)
	}
}

func buildInternalJobPayload(req internalJobSyncRequest) map[string]any {
	payload := map[string]any{
		"date":  req.Date,
		"force": req.Force,
	}
	if strings.TrimSpace(req.DispatchID) != "" {
		payload["dispatch_id"] = req.DispatchID
	}
	return payload
}

func buildManualDispatchID(jobName, dateKey string, now time.Time) string {
	jobName = sanitizeDispatchPart(jobName)
	dateKey = sanitizeDispatchPart(dateKey)
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + jobName + "-" + dateKey + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return internalJobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}

func httpTraceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
