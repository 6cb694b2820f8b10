package postgres

import (
	"database/sql"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/venue"
)

type venueTableModel struct {
	ID        int64          `db:"id"`
	NameKey   string         `db:"name_key"`
	Name      string         `db:"name"`
	Timezone  sql.NullString `db:"timezone"`
	UTCOffset sql.NullString `db:"utc_offset"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func mapVenueRow(row venueTableModel) venue.Venue {
	return venue.Venue{
		NameKey:   row.NameKey,
		Name:      row.Name,
		Timezone:  row.Timezone.String,
		UTCOffset: row.UTCOffset.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type venueInsertModel struct {
	NameKey   string  `db:"name_key"`
	Name      string  `db:"name"`
	Timezone  *string `db:"timezone"`
	UTCOffset *string `db:"utc_offset"`
}
