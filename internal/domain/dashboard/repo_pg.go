package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) PendingPrescriptions(ctx context.Context) ([]*Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pr.id, pa.name, pr.created_at
		FROM prescriptions pr
		JOIN patients pa ON pa.id = pr.patient_id
		WHERE pr.status = 'pending'
		ORDER BY pr.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.PatientName, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}

func (r *repoPG) DrugPrescriptionCounts(ctx context.Context) ([]DrugCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.name, COUNT(pd.prescription_id)
		FROM drugs d
		LEFT JOIN prescription_drugs pd ON pd.drug_id = d.id
		GROUP BY d.name
		ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DrugCount
	for rows.Next() {
		var dc DrugCount
		if err := rows.Scan(&dc.Name, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
