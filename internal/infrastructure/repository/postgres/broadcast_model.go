package postgres

import (
	"database/sql"

	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
)

type broadcastTableModel struct {
	ID             int64          `db:"id"`
	GameExternalID int64          `db:"game_external_id"`
	Network        string         `db:"network"`
	CountryCode    string         `db:"country_code"`
	Market         sql.NullString `db:"market"`
	SequenceNumber int            `db:"sequence_number"`
}

func mapBroadcastRow(row broadcastTableModel) broadcast.Broadcast {
	return broadcast.Broadcast{
		GameExternalID: row.GameExternalID,
		Network:        row.Network,
		CountryCode:    row.CountryCode,
		Market:         row.Market.String,
		SequenceNumber: row.SequenceNumber,
	}
}

type broadcastInsertModel struct {
	GameExternalID int64   `db:"game_external_id"`
	Network        string  `db:"network"`
	CountryCode    string  `db:"country_code"`
	Market         *string `db:"market"`
	SequenceNumber int     `db:"sequence_number"`
}
