package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
	qb "github.com/slapshotlabs/scoresync/internal/platform/querybuilder"
)

type FetchAttemptRepository struct {
	db *sqlx.DB
}

func NewFetchAttemptRepository(db *sqlx.DB) *FetchAttemptRepository {
	return &FetchAttemptRepository{db: db}
}

func (r *FetchAttemptRepository) Append(ctx context.Context, item fetchattempt.Attempt) error {
	fetchedAt := item.FetchedAt.UTC()
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	model := fetchAttemptInsertModel{
		AttemptDate:    item.Date.Format(sqlDateLayout),
		SourceURL:      item.SourceURL,
		Success:        item.Success,
		GamesProcessed: item.GamesProcessed,
		ErrorMessage:   item.ErrorMessage,
		FetchedAt:      fetchedAt,
	}

	query, args, err := qb.InsertModel("fetch_attempts", model, "")
	if err != nil {
		return fmt.Errorf("build insert fetch attempt query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fetch attempt date=%s: %w", model.AttemptDate, err)
	}

	return nil
}

func (r *FetchAttemptRepository) List(ctx context.Context, filter fetchattempt.ListFilter) ([]fetchattempt.Attempt, error) {
	conditions := make([]qb.Condition, 0, 2)
	if filter.Date != nil {
		conditions = append(conditions, qb.Eq("attempt_date", filter.Date.Format(sqlDateLayout)))
	}
	if filter.Success != nil {
		conditions = append(conditions, qb.Eq("success", *filter.Success))
	}

	query, args, err := qb.Select("*").From("fetch_attempts").
		Where(conditions...).
		OrderBy("fetched_at DESC", "id DESC").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fetch attempts query: %w", err)
	}

	var rows []fetchAttemptTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fetch attempts: %w", err)
	}

	out := make([]fetchattempt.Attempt, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFetchAttemptRow(row))
	}

	return out, nil
}
