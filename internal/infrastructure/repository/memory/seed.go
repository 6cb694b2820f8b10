package memory

import (
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
)

const (
	TeamIDBruins    = 6
	TeamIDCanadiens = 8
	TeamIDSenators  = 9
	TeamIDMapleLeaf = 10
	TeamIDRedWings  = 17
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ExternalID: TeamIDBruins, Name: "Boston Bruins", Abbrev: "BOS", LogoURL: "https://assets.nhle.com/logos/nhl/svg/BOS_light.svg"},
		{ExternalID: TeamIDCanadiens, Name: "Montréal Canadiens", Abbrev: "MTL", LogoURL: "https://assets.nhle.com/logos/nhl/svg/MTL_light.svg"},
		{ExternalID: TeamIDSenators, Name: "Ottawa Senators", Abbrev: "OTT", LogoURL: "https://assets.nhle.com/logos/nhl/svg/OTT_light.svg"},
		{ExternalID: TeamIDMapleLeaf, Name: "Toronto Maple Leafs", Abbrev: "TOR", LogoURL: "https://assets.nhle.com/logos/nhl/svg/TOR_light.svg"},
		{ExternalID: TeamIDRedWings, Name: "Detroit Red Wings", Abbrev: "DET", LogoURL: "https://assets.nhle.com/logos/nhl/svg/DET_light.svg"},
	}
}

func SeedVenues() []venue.Venue {
	return []venue.Venue{
		{NameKey: "bell-centre", Name: "Bell Centre", Timezone: "America/Toronto", UTCOffset: "-04:00"},
		{NameKey: "canadian-tire-centre", Name: "Canadian Tire Centre", Timezone: "America/Toronto", UTCOffset: "-04:00"},
		{NameKey: "scotiabank-arena", Name: "Scotiabank Arena", Timezone: "America/Toronto", UTCOffset: "-04:00"},
		{NameKey: "td-garden", Name: "TD Garden", Timezone: "America/New_York", UTCOffset: "-04:00"},
	}
}

func SeedGames() []game.Game {
	finalHome := 4
	finalAway := 2
	venueScotiabank := "scotiabank-arena"
	venueBell := "bell-centre"
	startEarly := time.Date(2025, 9, 21, 17, 0, 0, 0, time.UTC)
	startLate := time.Date(2025, 9, 22, 23, 0, 0, 0, time.UTC)

	return []game.Game{
		{
			ExternalID:         2025010006,
			Season:             20252026,
			GameType:           game.GameTypePreseason,
			GameDate:           time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC),
			State:              game.StateFinal,
			ScheduleState:      "OK",
			HomeTeamExternalID: TeamIDMapleLeaf,
			AwayTeamExternalID: TeamIDSenators,
			HomeScore:          &finalHome,
			AwayScore:          &finalAway,
			VenueNameKey:       &venueScotiabank,
			StartTimeUTC:       &startEarly,
			EasternUTCOffset:   "-04:00",
		},
		{
			ExternalID:         2025010011,
			Season:             20252026,
			GameType:           game.GameTypePreseason,
			GameDate:           time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC),
			State:              game.StateScheduled,
			ScheduleState:      "OK",
			HomeTeamExternalID: TeamIDCanadiens,
			AwayTeamExternalID: TeamIDBruins,
			VenueNameKey:       &venueBell,
			StartTimeUTC:       &startLate,
			EasternUTCOffset:   "-04:00",
		},
	}
}
