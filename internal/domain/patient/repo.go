package patient

import "context"

type Repository interface {
	GetByFileNumber(ctx context.Context, fileNumber string) (*Patient, error)
	// TryCreate inserts the patient unless the file number is already taken.
	// It reports whether a row was created.
	TryCreate(ctx context.Context, p *Patient) (bool, error)
}
