package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	qb "github.com/slapshotlabs/scoresync/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context, filter game.ListFilter) ([]game.Game, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Date != nil {
		conditions = append(conditions, qb.Eq("game_date", filter.Date.Format(sqlDateLayout)))
	}
	if filter.State != nil {
		conditions = append(conditions, qb.Eq("game_state", string(*filter.State)))
	}
	if filter.TeamExternalID != nil {
		conditions = append(conditions, qb.Expr(
			"(home_team_external_id = ? OR away_team_external_id = ?)",
			*filter.TeamExternalID, *filter.TeamExternalID,
		))
	}

	query, args, err := qb.Select("*").From("games").
		Where(conditions...).
		OrderBy("game_date", "start_time_utc", "external_id").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}

	return out, nil
}

func (r *GameRepository) GetByExternalID(ctx context.Context, externalID int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("external_id", externalID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game external_id=%d: %w", externalID, err)
	}

	return mapGameRow(row), true, nil
}

func (r *GameRepository) CountByState(ctx context.Context) (map[game.State]int, error) {
	query, args, err := qb.Select("game_state", "COUNT(*) AS total").From("games").
		Where(qb.IsNull("deleted_at")).
		GroupBy("game_state").
		OrderBy("game_state").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count games by state query: %w", err)
	}

	var rows []struct {
		GameState string `db:"game_state"`
		Total     int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count games by state: %w", err)
	}

	out := make(map[game.State]int, len(rows))
	for _, row := range rows {
		out[game.State(row.GameState)] = row.Total
	}

	return out, nil
}

func (r *GameRepository) Insert(ctx context.Context, item game.Game) error {
	query, args, err := qb.InsertModel("games", newGameInsertModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert game query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert game %d: %w", item.ExternalID, game.ErrDuplicateExternalID)
		}
		return fmt.Errorf("insert game %d: %w", item.ExternalID, err)
	}

	return nil
}

func (r *GameRepository) Update(ctx context.Context, item game.Game) error {
	query, args, err := qb.Update("games").
		Set("season", item.Season).
		Set("game_type", item.GameType).
		Set("game_date", item.GameDate.Format(sqlDateLayout)).
		Set("game_state", string(item.State)).
		Set("schedule_state", optionalString(item.ScheduleState)).
		Set("neutral_site", item.NeutralSite).
		Set("home_team_external_id", item.HomeTeamExternalID).
		Set("away_team_external_id", item.AwayTeamExternalID).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("home_sog", item.HomeSOG).
		Set("away_sog", item.AwaySOG).
		Set("home_record", item.HomeRecord).
		Set("away_record", item.AwayRecord).
		Set("venue_name_key", item.VenueNameKey).
		Set("start_time_utc", item.StartTimeUTC).
		Set("eastern_utc_offset", optionalString(item.EasternUTCOffset)).
		Set("gamecenter_link", item.GameCenterLink).
		Set("tickets_link", item.TicketsLink).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("external_id", item.ExternalID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game %d: %w", item.ExternalID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game %d rows affected: %w", item.ExternalID, err)
	}
	if affected == 0 {
		return fmt.Errorf("game %d not found", item.ExternalID)
	}

	return nil
}
