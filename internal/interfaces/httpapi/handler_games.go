package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	input := usecase.GameListInput{
		DateKey: strings.TrimSpace(r.URL.Query().Get("date")),
		State:   strings.TrimSpace(r.URL.Query().Get("state")),
	}

	teamID, err := parseOptionalInt64Query(r, "team")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.TeamExternalID = teamID

	limit, err := parseOptionalIntQuery(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.Limit = limit

	items, err := h.gameService.List(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "date", input.DateKey, "state", input.State, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID, err := parseInt64Path(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.gameService.GetDetails(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameDetailsToDTO(ctx, details))
}

type gameDTO struct {
	ID               int64   `json:"id"`
	Season           int     `json:"season"`
	GameType         int     `json:"gameType"`
	GameDate         string  `json:"gameDate"`
	State            string  `json:"state"`
	ScheduleState    string  `json:"scheduleState"`
	NeutralSite      bool    `json:"neutralSite"`
	HomeTeamID       int64   `json:"homeTeamId"`
	AwayTeamID       int64   `json:"awayTeamId"`
	HomeScore        *int    `json:"homeScore"`
	AwayScore        *int    `json:"awayScore"`
	HomeSOG          *int    `json:"homeShotsOnGoal"`
	AwaySOG          *int    `json:"awayShotsOnGoal"`
	HomeRecord       *string `json:"homeRecord"`
	AwayRecord       *string `json:"awayRecord"`
	VenueKey         *string `json:"venueKey"`
	StartTimeUTC     string  `json:"startTimeUtc,omitempty"`
	EasternUTCOffset string  `json:"easternUtcOffset,omitempty"`
	GameCenterLink   *string `json:"gamecenterLink,omitempty"`
	TicketsLink      *string `json:"ticketsLink,omitempty"`
	UpdatedAtUTC     string  `json:"updatedAtUtc"`
}

type gameDetailsDTO struct {
	Game       gameDTO        `json:"game"`
	HomeTeam   *teamDTO       `json:"homeTeam,omitempty"`
	AwayTeam   *teamDTO       `json:"awayTeam,omitempty"`
	Venue      *venueDTO      `json:"venue,omitempty"`
	Broadcasts []broadcastDTO `json:"broadcasts"`
}

type broadcastDTO struct {
	Network        string `json:"network"`
	CountryCode    string `json:"countryCode"`
	Market         string `json:"market,omitempty"`
	SequenceNumber int    `json:"sequenceNumber"`
}

// gameToDTO serializes a stored game. Score, shot and record pointers pass
// through so unreported values render as JSON null rather than zero.
func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:               v.ExternalID,
		Season:           v.Season,
		GameType:         v.GameType,
		GameDate:         v.GameDate.Format("2006-01-02"),
		State:            string(v.State),
		ScheduleState:    v.ScheduleState,
		NeutralSite:      v.NeutralSite,
		HomeTeamID:       v.HomeTeamExternalID,
		AwayTeamID:       v.AwayTeamExternalID,
		HomeScore:        v.HomeScore,
		AwayScore:        v.AwayScore,
		HomeSOG:          v.HomeSOG,
		AwaySOG:          v.AwaySOG,
		HomeRecord:       v.HomeRecord,
		AwayRecord:       v.AwayRecord,
		VenueKey:         v.VenueNameKey,
		StartTimeUTC:     formatOptionalTime(v.StartTimeUTC),
		EasternUTCOffset: v.EasternUTCOffset,
		GameCenterLink:   v.GameCenterLink,
		TicketsLink:      v.TicketsLink,
		UpdatedAtUTC:     v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func gameDetailsToDTO(ctx context.Context, v usecase.GameDetails) gameDetailsDTO {
	ctx, span := startSpan(ctx, "httpapi.gameDetailsToDTO")
	defer span.End()

	out := gameDetailsDTO{
		Game:       gameToDTO(ctx, v.Game),
		Broadcasts: broadcastsToDTO(ctx, v.Broadcasts),
	}
	if v.HomeTeam != nil {
		dto := teamToDTO(ctx, *v.HomeTeam)
		out.HomeTeam = &dto
	}
	if v.AwayTeam != nil {
		dto := teamToDTO(ctx, *v.AwayTeam)
		out.AwayTeam = &dto
	}
	if v.Venue != nil {
		dto := venueToDTO(ctx, *v.Venue)
		out.Venue = &dto
	}

	return out
}

func broadcastsToDTO(ctx context.Context, items []broadcast.Broadcast) []broadcastDTO {
	ctx, span := startSpan(ctx, "httpapi.broadcastsToDTO")
	defer span.End()

	out := make([]broadcastDTO, 0, len(items))
	for _, item := range items {
		out = append(out, broadcastDTO{
			Network:        item.Network,
			CountryCode:    item.CountryCode,
			Market:         item.Market,
			SequenceNumber: item.SequenceNumber,
		})
	}

	return out
}
