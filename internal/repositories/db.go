package repositories

import (
	"context"
	"fmt"

	"opsdash/internal/common"
	"opsdash/internal/models"
	"opsdash/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of the pool used by repositories. Both *pgxpool.Pool
// and pgxmock pools satisfy it.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func queryRecords(ctx context.Context, db Database, sql string, args ...any) ([]models.Record, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, common.ClassifyStoreError(err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, common.ClassifyStoreError(err)
	}
	records := make([]models.Record, len(maps))
	for i, m := range maps {
		records[i] = models.Record(m)
	}
	return records, nil
}

// queryRecord returns ErrNotFound when the statement yields no row.
func queryRecord(ctx context.Context, db Database, sql string, args ...any) (models.Record, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, common.ClassifyStoreError(err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, common.ClassifyStoreError(err)
	}
	return models.Record(m), nil
}

// listRecords runs the count and the paginated select for b.
func listRecords(ctx context.Context, db Database, spec query.Spec, b *query.Builder, opts query.ListOptions) ([]models.Record, int, error) {
	listSQL, listArgs, countSQL, countArgs, err := spec.List(b, opts)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, common.ClassifyStoreError(err)
	}

	records, err := queryRecords(ctx, db, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// nextID draws the next insertion sequence value and, when id is empty,
// formats a prefixed identifier from it.
func nextID(ctx context.Context, db Database, sequence, prefix string, id *string) (int64, string, error) {
	var seq int64
	if err := db.QueryRow(ctx, "SELECT nextval('"+sequence+"')").Scan(&seq); err != nil {
		return 0, "", common.ClassifyStoreError(err)
	}
	if id != nil && *id != "" {
		return seq, *id, nil
	}
	return seq, fmt.Sprintf("%s%04d", prefix, seq), nil
}
