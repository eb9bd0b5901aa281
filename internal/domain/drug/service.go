package drug

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrMissingField = errors.New("name, strength, instructions and warnings are required")
	ErrNotFound     = errors.New("drug not found")
)

type Service struct {
	drugs Repository
}

func NewService(drugs Repository) *Service {
	return &Service{drugs: drugs}
}

func (s *Service) Create(ctx context.Context, d *Drug) error {
	if d.Name == "" || d.Strength == "" || d.Instructions == "" || d.Warnings == "" {
		return ErrMissingField
	}
	return s.drugs.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Drug, error) {
	return s.drugs.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Drug, error) {
	return s.drugs.List(ctx)
}

// Exists reports whether a catalog entry with the given id exists.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.drugs.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
