package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, p *Prescription, drugIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = StatusPending
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO prescriptions (id, patient_id, doctor_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		p.ID, p.PatientID, p.DoctorID, p.Status).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}

	for i, drugID := range drugIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO prescription_drugs (prescription_id, drug_id, position)
			VALUES ($1, $2, $3)`,
			p.ID, drugID, i)
		if err != nil {
			return fmt.Errorf("link drug %s: %w", drugID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *repoPG) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	var d Detail
	err := r.pool.QueryRow(ctx, `
		SELECT pr.id, pr.status, pr.created_at,
		       pa.id, pa.name, pa.file_number,
		       u.id, u.username
		FROM prescriptions pr
		JOIN patients pa ON pa.id = pr.patient_id
		JOIN users u ON u.id = pr.doctor_id
		WHERE pr.id = $1`, id).
		Scan(&d.ID, &d.Status, &d.CreatedAt,
			&d.Patient.ID, &d.Patient.Name, &d.Patient.FileNumber,
			&d.Doctor.ID, &d.Doctor.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT dr.id, dr.name, dr.strength, dr.instructions, dr.warnings
		FROM prescription_drugs pd
		JOIN drugs dr ON dr.id = pd.drug_id
		WHERE pd.prescription_id = $1
		ORDER BY pd.position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Drugs = []DrugInfo{}
	for rows.Next() {
		var di DrugInfo
		if err := rows.Scan(&di.ID, &di.Name, &di.Strength, &di.Instructions, &di.Warnings); err != nil {
			return nil, err
		}
		d.Drugs = append(d.Drugs, di)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE prescriptions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
