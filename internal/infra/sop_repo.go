package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sopdesk/sopdesk/internal/models"
	"github.com/sopdesk/sopdesk/internal/ports"
)

type PostgresSopRepo struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresSopRepo(pool *pgxpool.Pool, table string) ports.SopRepository {
	return &PostgresSopRepo{
		pool:  pool,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

// List fetches one window of rows plus the exact total. Rows come back
// newest first; id breaks ties between rows sharing a created_at.
func (r *PostgresSopRepo) List(ctx context.Context, offset, limit int) ([]models.Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table),
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sops: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT *
		FROM %s
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`, r.table)

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list sops: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sop row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list sops: %w", err)
	}

	return records, total, nil
}

func (r *PostgresSopRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, r.table)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get sop by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get sop by id: %w", err)
		}
		return nil, nil
	}

	rec, err := scanRecord(rows)
	if err != nil {
		return nil, fmt.Errorf("scan sop row: %w", err)
	}
	return rec, nil
}

// scanRecord turns the current row into an open-ended Record so the
// gateway never bakes in a column schema.
func scanRecord(rows pgx.Rows) (models.Record, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fields := rows.FieldDescriptions()
	rec := make(models.Record, len(fields))
	for i, fd := range fields {
		rec[fd.Name] = values[i]
	}
	return rec, nil
}
