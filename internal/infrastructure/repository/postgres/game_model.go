package postgres

import (
	"database/sql"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/game"
)

type gameTableModel struct {
	ID                 int64          `db:"id"`
	ExternalID         int64          `db:"external_id"`
	Season             int            `db:"season"`
	GameType           int            `db:"game_type"`
	GameDate           time.Time      `db:"game_date"`
	GameState          string         `db:"game_state"`
	ScheduleState      sql.NullString `db:"schedule_state"`
	NeutralSite        bool           `db:"neutral_site"`
	HomeTeamExternalID int64          `db:"home_team_external_id"`
	AwayTeamExternalID int64          `db:"away_team_external_id"`
	HomeScore          sql.NullInt64  `db:"home_score"`
	AwayScore          sql.NullInt64  `db:"away_score"`
	HomeSOG            sql.NullInt64  `db:"home_sog"`
	AwaySOG            sql.NullInt64  `db:"away_sog"`
	HomeRecord         sql.NullString `db:"home_record"`
	AwayRecord         sql.NullString `db:"away_record"`
	VenueNameKey       sql.NullString `db:"venue_name_key"`
	StartTimeUTC       *time.Time     `db:"start_time_utc"`
	EasternUTCOffset   sql.NullString `db:"eastern_utc_offset"`
	GameCenterLink     sql.NullString `db:"gamecenter_link"`
	TicketsLink        sql.NullString `db:"tickets_link"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	DeletedAt          *time.Time     `db:"deleted_at"`
}

func mapGameRow(row gameTableModel) game.Game {
	return game.Game{
		ExternalID:         row.ExternalID,
		Season:             row.Season,
		GameType:           row.GameType,
		GameDate:           row.GameDate,
		State:              game.State(row.GameState),
		ScheduleState:      row.ScheduleState.String,
		NeutralSite:        row.NeutralSite,
		HomeTeamExternalID: row.HomeTeamExternalID,
		AwayTeamExternalID: row.AwayTeamExternalID,
		HomeScore:          nullInt64IntPtr(row.HomeScore),
		AwayScore:          nullInt64IntPtr(row.AwayScore),
		HomeSOG:            nullInt64IntPtr(row.HomeSOG),
		AwaySOG:            nullInt64IntPtr(row.AwaySOG),
		HomeRecord:         nullStringPtr(row.HomeRecord),
		AwayRecord:         nullStringPtr(row.AwayRecord),
		VenueNameKey:       nullStringPtr(row.VenueNameKey),
		StartTimeUTC:       row.StartTimeUTC,
		EasternUTCOffset:   row.EasternUTCOffset.String,
		GameCenterLink:     nullStringPtr(row.GameCenterLink),
		TicketsLink:        nullStringPtr(row.TicketsLink),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

type gameInsertModel struct {
	ExternalID         int64      `db:"external_id"`
	Season             int        `db:"season"`
	GameType           int        `db:"game_type"`
	GameDate           string     `db:"game_date"`
	GameState          string     `db:"game_state"`
	ScheduleState      *string    `db:"schedule_state"`
	NeutralSite        bool       `db:"neutral_site"`
	HomeTeamExternalID int64      `db:"home_team_external_id"`
	AwayTeamExternalID int64      `db:"away_team_external_id"`
	HomeScore          *int       `db:"home_score"`
	AwayScore          *int       `db:"away_score"`
	HomeSOG            *int       `db:"home_sog"`
	AwaySOG            *int       `db:"away_sog"`
	HomeRecord         *string    `db:"home_record"`
	AwayRecord         *string    `db:"away_record"`
	VenueNameKey       *string    `db:"venue_name_key"`
	StartTimeUTC       *time.Time `db:"start_time_utc"`
	EasternUTCOffset   *string    `db:"eastern_utc_offset"`
	GameCenterLink     *string    `db:"gamecenter_link"`
	TicketsLink        *string    `db:"tickets_link"`
}

func newGameInsertModel(item game.Game) gameInsertModel {
	return gameInsertModel{
		ExternalID:         item.ExternalID,
		Season:             item.Season,
		GameType:           item.GameType,
		GameDate:           item.GameDate.Format(sqlDateLayout),
		GameState:          string(item.State),
		ScheduleState:      optionalString(item.ScheduleState),
		NeutralSite:        item.NeutralSite,
		HomeTeamExternalID: item.HomeTeamExternalID,
		AwayTeamExternalID: item.AwayTeamExternalID,
		HomeScore:          item.HomeScore,
		AwayScore:          item.AwayScore,
		HomeSOG:            item.HomeSOG,
		AwaySOG:            item.AwaySOG,
		HomeRecord:         item.HomeRecord,
		AwayRecord:         item.AwayRecord,
		VenueNameKey:       item.VenueNameKey,
		StartTimeUTC:       item.StartTimeUTC,
		EasternUTCOffset:   optionalString(item.EasternUTCOffset),
		GameCenterLink:     item.GameCenterLink,
		TicketsLink:        item.TicketsLink,
	}
}
