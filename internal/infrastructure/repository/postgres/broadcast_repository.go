package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
	qb "github.com/slapshotlabs/scoresync/internal/platform/querybuilder"
)

type BroadcastRepository struct {
	db *sqlx.DB
}

func NewBroadcastRepository(db *sqlx.DB) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

func (r *BroadcastRepository) ListForGame(ctx context.Context, gameExternalID int64) ([]broadcast.Broadcast, error) {
	query, args, err := qb.Select("*").From("broadcasts").
		Where(qb.Eq("game_external_id", gameExternalID)).
		OrderBy("sequence_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select broadcasts query: %w", err)
	}

	var rows []broadcastTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select broadcasts game=%d: %w", gameExternalID, err)
	}

	out := make([]broadcast.Broadcast, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBroadcastRow(row))
	}

	return out, nil
}

// ReplaceForGame swaps a game's whole listing set in one transaction so
// readers never observe a partially replaced set.
func (r *BroadcastRepository) ReplaceForGame(ctx context.Context, gameExternalID int64, items []broadcast.Broadcast) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for broadcast replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("broadcasts").
		Where(qb.Eq("game_external_id", gameExternalID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete broadcasts query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete broadcasts game=%d: %w", gameExternalID, err)
	}

	for _, item := range items {
		model := broadcastInsertModel{
			GameExternalID: gameExternalID,
			Network:        item.Network,
			CountryCode:    item.CountryCode,
			Market:         optionalString(item.Market),
			SequenceNumber: item.SequenceNumber,
		}
		insertQuery, insertArgs, err := qb.InsertModel("broadcasts", model, "")
		if err != nil {
			return fmt.Errorf("build insert broadcast network=%s query: %w", item.Network, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert broadcast game=%d network=%s: %w", gameExternalID, item.Network, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit broadcast replace tx: %w", err)
	}

	return nil
}
