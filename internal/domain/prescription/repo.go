package prescription

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the prescription row and its drug links, preserving the
	// order of drugIDs, in a single transaction.
	Create(ctx context.Context, p *Prescription, drugIDs []uuid.UUID) error
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
