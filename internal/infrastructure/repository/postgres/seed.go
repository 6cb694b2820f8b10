package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo dataset into an empty store so local
// environments have browsable rows before the first real ingest. A store
// with any team row is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (external_id, name, abbrev, logo_url)
VALUES (:external_id, :name, :abbrev, :logo_url)
ON CONFLICT (external_id) DO NOTHING`, map[string]any{
			"external_id": t.ExternalID,
			"name":        t.Name,
			"abbrev":      t.Abbrev,
			"logo_url":    optionalString(t.LogoURL),
		})
		if err != nil {
			return fmt.Errorf("bind seed team %d query: %w", t.ExternalID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %d: %w", t.ExternalID, err)
		}
	}

	for _, v := range memory.SeedVenues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO venues (name_key, name, timezone, utc_offset)
VALUES (:name_key, :name, :timezone, :utc_offset)
ON CONFLICT (name_key) DO NOTHING`, map[string]any{
			"name_key":   v.NameKey,
			"name":       v.Name,
			"timezone":   optionalString(v.Timezone),
			"utc_offset": optionalString(v.UTCOffset),
		})
		if err != nil {
			return fmt.Errorf("bind seed venue %s query: %w", v.NameKey, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed venue %s: %w", v.NameKey, err)
		}
	}

	for _, g := range memory.SeedGames() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO games (
    external_id, season, game_type, game_date, game_state, schedule_state,
    neutral_site, home_team_external_id, away_team_external_id,
    home_score, away_score, home_sog, away_sog, home_record, away_record,
    venue_name_key, start_time_utc, eastern_utc_offset, gamecenter_link, tickets_link
) VALUES (
    :external_id, :season, :game_type, :game_date, :game_state, :schedule_state,
    :neutral_site, :home_team_external_id, :away_team_external_id,
    :home_score, :away_score, :home_sog, :away_sog, :home_record, :away_record,
    :venue_name_key, :start_time_utc, :eastern_utc_offset, :gamecenter_link, :tickets_link
)
ON CONFLICT (external_id) DO NOTHING`, map[string]any{
			"external_id":           g.ExternalID,
			"season":                g.Season,
			"game_type":             g.GameType,
			"game_date":             g.GameDate.Format(sqlDateLayout),
			"game_state":            string(g.State),
			"schedule_state":        optionalString(g.ScheduleState),
			"neutral_site":          g.NeutralSite,
			"home_team_external_id": g.HomeTeamExternalID,
			"away_team_external_id": g.AwayTeamExternalID,
			"home_score":            g.HomeScore,
			"away_score":            g.AwayScore,
			"home_sog":              g.HomeSOG,
			"away_sog":              g.AwaySOG,
			"home_record":           g.HomeRecord,
			"away_record":           g.AwayRecord,
			"venue_name_key":        g.VenueNameKey,
			"start_time_utc":        g.StartTimeUTC,
			"eastern_utc_offset":    optionalString(g.EasternUTCOffset),
			"gamecenter_link":       g.GameCenterLink,
			"tickets_link":          g.TicketsLink,
		})
		if err != nil {
			return fmt.Errorf("bind seed game %d query: %w", g.ExternalID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed game %d: %w", g.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
