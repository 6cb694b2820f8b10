package postgres

import (
	"database/sql"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/team"
)

type teamTableModel struct {
	ID         int64          `db:"id"`
	ExternalID int64          `db:"external_id"`
	Name       string         `db:"name"`
	Abbrev     string         `db:"abbrev"`
	LogoURL    sql.NullString `db:"logo_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

func mapTeamRow(row teamTableModel) team.Team {
	return team.Team{
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Abbrev:     row.Abbrev,
		LogoURL:    row.LogoURL.String,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type teamInsertModel struct {
	ExternalID int64   `db:"external_id"`
	Name       string  `db:"name"`
	Abbrev     string  `db:"abbrev"`
	LogoURL    *string `db:"logo_url"`
}
