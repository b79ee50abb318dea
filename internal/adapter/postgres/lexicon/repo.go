// Package lexicon implements the lexicon row store on PostgreSQL. The
// coarse filter predicate handed in by the search façade is translated to
// SQL; verification of the candidates stays with the caller.
package lexicon

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanzikit/cjklex/internal/adapter/postgres"
	"github.com/hanzikit/cjklex/internal/domain"
	"github.com/hanzikit/cjklex/internal/search"
)

const table = "lexicon_entries"

var columns = []string{"id", "dictionary", "headword", "headword_simplified", "reading", "translation"}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides lexicon entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// Search returns the candidate rows of one dictionary passing the coarse
// filter. A nil filter returns the whole dictionary.
func (r *Repo) Search(ctx context.Context, dictionary string, filter search.Predicate) ([]domain.Entry, error) {
	qb := builder.Select(columns...).
		From(table).
		Where(sq.Eq{"dictionary": dictionary}).
		OrderBy("headword", "reading")

	if filter != nil {
		cond, err := toSqlizer(filter)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", dictionary, err)
		}
		qb = qb.Where(cond)
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("search %s: build query: %w", dictionary, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lexicon", dictionary)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, postgres.MapError(err, "lexicon", dictionary)
	}
	return entries, nil
}

// InsertBatch stores entries in one batch, assigning identities to
// entries without one.
func (r *Repo) InsertBatch(ctx context.Context, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	qb := builder.Insert(table).Columns(columns...)
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		qb = qb.Values(e.ID, e.Dictionary, e.Headword, e.HeadwordSimplified, e.Reading, e.Translation)
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return fmt.Errorf("insert entries: build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, "lexicon", entries[0].Dictionary)
	}
	return nil
}

// Replace swaps a dictionary's content for the given entries atomically.
// batchSize caps the rows per INSERT; values above 10000 would exceed the
// pgx placeholder limit with six columns per row.
func (r *Repo) Replace(ctx context.Context, dictionary string, entries []domain.Entry, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}

	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := r.DeleteDictionary(txCtx, dictionary); err != nil {
			return err
		}
		for start := 0; start < len(entries); start += batchSize {
			end := start + batchSize
			if end > len(entries) {
				end = len(entries)
			}
			if err := r.InsertBatch(txCtx, entries[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteDictionary removes all rows of one dictionary and reports how
// many were dropped.
func (r *Repo) DeleteDictionary(ctx context.Context, dictionary string) (int64, error) {
	sqlStr, args, err := builder.Delete(table).Where(sq.Eq{"dictionary": dictionary}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("delete %s: build query: %w", dictionary, err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, postgres.MapError(err, "lexicon", dictionary)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of rows of one dictionary.
func (r *Repo) Count(ctx context.Context, dictionary string) (int64, error) {
	sqlStr, args, err := builder.Select("count(*)").From(table).Where(sq.Eq{"dictionary": dictionary}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("count %s: build query: %w", dictionary, err)
	}

	var count int64
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if err := querier.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "lexicon", dictionary)
	}
	return count, nil
}

func scanEntries(rows pgx.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.Dictionary, &e.Headword, &e.HeadwordSimplified, &e.Reading, &e.Translation); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
