package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
	qb "github.com/slapshotlabs/scoresync/internal/platform/querybuilder"
)

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) List(ctx context.Context) ([]venue.Venue, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues query: %w", err)
	}

	var rows []venueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}

	out := make([]venue.Venue, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapVenueRow(row))
	}

	return out, nil
}

func (r *VenueRepository) GetByNameKey(ctx context.Context, nameKey string) (venue.Venue, bool, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(
			qb.Eq("name_key", nameKey),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("build select venue query: %w", err)
	}

	var row venueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, false, nil
		}
		return venue.Venue{}, false, fmt.Errorf("get venue name_key=%s: %w", nameKey, err)
	}

	return mapVenueRow(row), true, nil
}

func (r *VenueRepository) Insert(ctx context.Context, item venue.Venue) error {
	model := venueInsertModel{
		NameKey:   item.NameKey,
		Name:      item.Name,
		Timezone:  optionalString(item.Timezone),
		UTCOffset: optionalString(item.UTCOffset),
	}

	query, args, err := qb.InsertModel("venues", model, "")
	if err != nil {
		return fmt.Errorf("build insert venue query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert venue %s: %w", item.NameKey, venue.ErrDuplicateNameKey)
		}
		return fmt.Errorf("insert venue %s: %w", item.NameKey, err)
	}

	return nil
}

func (r *VenueRepository) Update(ctx context.Context, item venue.Venue) error {
	query, args, err := qb.Update("venues").
		Set("name", item.Name).
		Set("timezone", optionalString(item.Timezone)).
		Set("utc_offset", optionalString(item.UTCOffset)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("name_key", item.NameKey),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update venue query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update venue %s: %w", item.NameKey, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update venue %s rows affected: %w", item.NameKey, err)
	}
	if affected == 0 {
		return fmt.Errorf("venue %s not found", item.NameKey)
	}

	return nil
}
