package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrMissingField = errors.New("patient name and file number are required")
	ErrNotFound     = errors.New("patient not found")
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// FindOrCreate resolves a patient by file number, creating one with the given
// name if none exists. Idempotent on file number: the name of an existing
// patient is never overwritten. Two racing calls for the same new file number
// converge on a single row via the unique constraint; the loser of the insert
// re-reads the winner's row.
func (s *Service) FindOrCreate(ctx context.Context, name, fileNumber string) (uuid.UUID, error) {
	if name == "" || fileNumber == "" {
		return uuid.Nil, ErrMissingField
	}

	p, err := s.patients.GetByFileNumber(ctx, fileNumber)
	if err == nil {
		return p.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return uuid.Nil, fmt.Errorf("look up patient: %w", err)
	}

	candidate := &Patient{Name: name, FileNumber: fileNumber}
	created, err := s.patients.TryCreate(ctx, candidate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create patient: %w", err)
	}
	if created {
		return candidate.ID, nil
	}

	// Lost the insert race; the row exists now.
	p, err = s.patients.GetByFileNumber(ctx, fileNumber)
	if err != nil {
		return uuid.Nil, fmt.Errorf("re-read patient after conflict: %w", err)
	}
	return p.ID, nil
}

// Get returns the patient with the given file number.
func (s *Service) Get(ctx context.Context, fileNumber string) (*Patient, error) {
	return s.patients.GetByFileNumber(ctx, fileNumber)
}
