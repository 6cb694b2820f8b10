package nhlweb

import (
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/usecase"
)

// ScoreResponse is the daily score document served at /v1/score/{date}.
type ScoreResponse struct {
	PrevDate    string      `json:"prevDate"`
	CurrentDate string      `json:"currentDate"`
	NextDate    string      `json:"nextDate"`
	Games       []ScoreGame `json:"games"`
}

type ScoreGame struct {
	ID                int64         `json:"id"`
	Season            int           `json:"season"`
	GameType          int           `json:"gameType"`
	GameDate          string        `json:"gameDate"` // "YYYY-MM-DD"
	Venue             LocalizedName `json:"venue"`
	StartTimeUTC      *time.Time    `json:"startTimeUTC"`
	EasternUTCOffset  string        `json:"easternUTCOffset"`
	VenueUTCOffset    string        `json:"venueUTCOffset"`
	VenueTimezone     string        `json:"venueTimezone"`
	GameState         string        `json:"gameState"`
	GameScheduleState string        `json:"gameScheduleState"`
	NeutralSite       bool          `json:"neutralSite"`
	TVBroadcasts      []TVBroadcast `json:"tvBroadcasts"`
	HomeTeam          ScoreTeam     `json:"homeTeam"`
	AwayTeam          ScoreTeam     `json:"awayTeam"`
	GameCenterLink    string        `json:"gameCenterLink"`
	TicketsLink       string        `json:"ticketsLink"`
}

type ScoreTeam struct {
	ID       int64         `json:"id"`
	Name     LocalizedName `json:"name"`
	Abbrev   string        `json:"abbrev"`
	Score    *int          `json:"score"`
	SOG      *int          `json:"sog"`
	Record   string        `json:"record"`
	Logo     string        `json:"logo"`
	DarkLogo string        `json:"darkLogo"`
}

type LocalizedName struct {
	Default string `json:"default"`
}

type TVBroadcast struct {
	ID             int64  `json:"id"`
	Market         string `json:"market"`
	CountryCode    string `json:"countryCode"`
	Network        string `json:"network"`
	SequenceNumber int    `json:"sequenceNumber"`
}

func mapScoreResponse(raw ScoreResponse) usecase.ExternalScoreDay {
	out := usecase.ExternalScoreDay{
		CurrentDate: strings.TrimSpace(raw.CurrentDate),
		Games:       make([]usecase.ExternalGame, 0, len(raw.Games)),
	}
	for _, item := range raw.Games {
		out.Games = append(out.Games, mapScoreGame(item))
	}
	return out
}

func mapScoreGame(raw ScoreGame) usecase.ExternalGame {
	return usecase.ExternalGame{
		ExternalID:        raw.ID,
		Season:            raw.Season,
		GameType:          raw.GameType,
		GameDate:          strings.TrimSpace(raw.GameDate),
		GameState:         strings.TrimSpace(raw.GameState),
		GameScheduleState: strings.TrimSpace(raw.GameScheduleState),
		NeutralSite:       raw.NeutralSite,
		StartTimeUTC:      raw.StartTimeUTC,
		EasternUTCOffset:  strings.TrimSpace(raw.EasternUTCOffset),
		VenueUTCOffset:    strings.TrimSpace(raw.VenueUTCOffset),
		VenueTimezone:     strings.TrimSpace(raw.VenueTimezone),
		VenueName:         strings.TrimSpace(raw.Venue.Default),
		GameCenterLink:    strings.TrimSpace(raw.GameCenterLink),
		TicketsLink:       strings.TrimSpace(raw.TicketsLink),
		HomeTeam:          mapScoreTeam(raw.HomeTeam),
		AwayTeam:          mapScoreTeam(raw.AwayTeam),
		Broadcasts:        mapTVBroadcasts(raw.TVBroadcasts),
	}
}

func mapScoreTeam(raw ScoreTeam) usecase.ExternalGameTeam {
	return usecase.ExternalGameTeam{
		ExternalID: raw.ID,
		Name:       strings.TrimSpace(raw.Name.Default),
		Abbrev:     strings.TrimSpace(raw.Abbrev),
		LogoURL:    strings.TrimSpace(raw.Logo),
		Score:      raw.Score,
		SOG:        raw.SOG,
		Record:     strings.TrimSpace(raw.Record),
	}
}

func mapTVBroadcasts(raw []TVBroadcast) []usecase.ExternalBroadcast {
	if len(raw) == 0 {
		return nil
	}

	out := make([]usecase.ExternalBroadcast, 0, len(raw))
	for _, item := range raw {
		out = append(out, usecase.ExternalBroadcast{
			Network:        strings.TrimSpace(item.Network),
			CountryCode:    strings.TrimSpace(item.CountryCode),
			Market:         strings.TrimSpace(item.Market),
			SequenceNumber: item.SequenceNumber,
		})
	}
	return out
}
