package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres persists collections as ordered JSONB rows of one table,
// for sites that outgrow the workbook file. Save keeps the
// replace-the-whole-collection contract by deleting and reinserting
// inside a transaction.
type Postgres struct {
	pool *pgxpool.Pool
}

const recordsDDL = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT    NOT NULL,
    position   INTEGER NOT NULL,
    data       JSONB   NOT NULL,
    PRIMARY KEY (collection, position)
)`

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if _, err := pool.Exec(ctx, recordsDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure records table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Load(ctx context.Context, collection string) ([]Row, error) {
	query := `SELECT data FROM records WHERE collection = $1 ORDER BY position`
	dbRows, err := p.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}
	defer dbRows.Close()

	var rows []Row
	for dbRows.Next() {
		var row Row
		if err := dbRows.Scan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		rows = append(rows, row)
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	return normalizeRows(rows), nil
}

func (p *Postgres) Save(ctx context.Context, collection string, rows []Row) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin save of %s: %w", collection, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM records WHERE collection = $1`, collection); err != nil {
		return fmt.Errorf("failed to clear collection %s: %w", collection, err)
	}
	for i, row := range rows {
		_, err := tx.Exec(ctx,
			`INSERT INTO records (collection, position, data) VALUES ($1, $2, $3)`,
			collection, i, row)
		if err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", collection, i, err)
		}
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}
