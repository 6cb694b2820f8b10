package postgres

import (
	"database/sql"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
)

type fetchAttemptTableModel struct {
	ID             int64          `db:"id"`
	AttemptDate    time.Time      `db:"attempt_date"`
	SourceURL      string         `db:"source_url"`
	Success        bool           `db:"success"`
	GamesProcessed int            `db:"games_processed"`
	ErrorMessage   sql.NullString `db:"error_message"`
	FetchedAt      time.Time      `db:"fetched_at"`
}

func mapFetchAttemptRow(row fetchAttemptTableModel) fetchattempt.Attempt {
	return fetchattempt.Attempt{
		ID:             row.ID,
		Date:           row.AttemptDate,
		SourceURL:      row.SourceURL,
		Success:        row.Success,
		GamesProcessed: row.GamesProcessed,
		ErrorMessage:   nullStringPtr(row.ErrorMessage),
		FetchedAt:      row.FetchedAt,
	}
}

type fetchAttemptInsertModel struct {
	AttemptDate    string    `db:"attempt_date"`
	SourceURL      string    `db:"source_url"`
	Success        bool      `db:"success"`
	GamesProcessed int       `db:"games_processed"`
	ErrorMessage   *string   `db:"error_message"`
	FetchedAt      time.Time `db:"fetched_at"`
}
