package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
	"github.com/slapshotlabs/scoresync/internal/usecase"
)

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAttempts")
	defer span.End()

	input := usecase.AttemptListInput{
		DateKey: strings.TrimSpace(r.URL.Query().Get("date")),
	}

	success, err := parseOptionalBoolQuery(r, "success")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.Success = success

	limit, err := parseOptionalIntQuery(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.Limit = limit

	items, err := h.attemptService.List(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list fetch attempts failed", "date", input.DateKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]attemptDTO, 0, len(items))
	for _, item := range items {
		out = append(out, attemptToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

type attemptDTO struct {
	ID             int64  `json:"id"`
	Date           string `json:"date"`
	SourceURL      string `json:"sourceUrl"`
	Success        bool   `json:"success"`
	GamesProcessed int    `json:"gamesProcessed"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	FetchedAtUTC   string `json:"fetchedAtUtc"`
}

func attemptToDTO(ctx context.Context, v fetchattempt.Attempt) attemptDTO {
	ctx, span := startSpan(ctx, "httpapi.attemptToDTO")
	defer span.End()

	dto := attemptDTO{
		ID:             v.ID,
		Date:           v.Date.Format("2006-01-02"),
		SourceURL:      v.SourceURL,
		Success:        v.Success,
		GamesProcessed: v.GamesProcessed,
		FetchedAtUTC:   v.FetchedAt.UTC().Format(time.RFC3339),
	}
	if v.ErrorMessage != nil {
		dto.ErrorMessage = *v.ErrorMessage
	}

	return dto
}
