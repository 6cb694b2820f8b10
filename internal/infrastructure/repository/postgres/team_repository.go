package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	qb "github.com/slapshotlabs/scoresync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTeamRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, externalID int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("external_id", externalID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team external_id=%d: %w", externalID, err)
	}

	return mapTeamRow(row), true, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	model := teamInsertModel{
		ExternalID: item.ExternalID,
		Name:       item.Name,
		Abbrev:     item.Abbrev,
		LogoURL:    optionalString(item.LogoURL),
	}

	query, args, err := qb.InsertModel("teams", model, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert team %d: %w", item.ExternalID, team.ErrDuplicateExternalID)
		}
		return fmt.Errorf("insert team %d: %w", item.ExternalID, err)
	}

	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("abbrev", item.Abbrev).
		Set("logo_url", optionalString(item.LogoURL)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("external_id", item.ExternalID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team %d: %w", item.ExternalID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team %d rows affected: %w", item.ExternalID, err)
	}
	if affected == 0 {
		return fmt.Errorf("team %d not found", item.ExternalID)
	}

	return nil
}
