package patient

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

func (r *repoPG) GetByFileNumber(ctx context.Context, fileNumber string) (*Patient, error) {
	var p Patient
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, file_number, created_at
		FROM patients WHERE file_number = $1`, fileNumber).
		Scan(&p.ID, &p.Name, &p.FileNumber, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) TryCreate(ctx context.Context, p *Patient) (bool, error) {
	p.ID = uuid.New()
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, name, file_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_number) DO NOTHING`,
		p.ID, p.Name, p.FileNumber)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
