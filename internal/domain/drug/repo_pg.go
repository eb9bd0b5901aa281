package drug

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const drugCols = `id, name, strength, instructions, warnings, created_at`

func (r *repoPG) scan(row pgx.Row) (*Drug, error) {
	var d Drug
	err := row.Scan(&d.ID, &d.Name, &d.Strength, &d.Instructions, &d.Warnings, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Drug) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO drugs (id, name, strength, instructions, warnings)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Name, d.Strength, d.Instructions, d.Warnings)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Drug, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+drugCols+` FROM drugs WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Drug, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+drugCols+` FROM drugs ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Drug{}
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
