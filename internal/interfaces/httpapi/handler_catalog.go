package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.catalogService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := parseInt64Path(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, item))
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenues")
	defer span.End()

	items, err := h.catalogService.ListVenues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list venues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]venueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, venueToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

type teamDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbrev       string `json:"abbrev"`
	LogoURL      string `json:"logoUrl,omitempty"`
	UpdatedAtUTC string `json:"updatedAtUtc"`
}

type venueDTO struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Timezone     string `json:"timezone,omitempty"`
	UTCOffset    string `json:"utcOffset,omitempty"`
	UpdatedAtUTC string `json:"updatedAtUtc"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ExternalID,
		Name:         v.Name,
		Abbrev:       v.Abbrev,
		LogoURL:      v.LogoURL,
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func venueToDTO(ctx context.Context, v venue.Venue) venueDTO {
	ctx, span := startSpan(ctx, "httpapi.venueToDTO")
	defer span.End()

	return venueDTO{
		Key:          v.NameKey,
		Name:         v.Name,
		Timezone:     v.Timezone,
		UTCOffset:    v.UTCOffset,
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
