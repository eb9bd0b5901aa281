package prescription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrUnauthorizedDoctor = errors.New("invalid or unauthorized doctor id")
	ErrInvalidDrug        = errors.New("invalid drug id")
	ErrNotFound           = errors.New("prescription not found")
)

// DrugNotFoundError identifies which drug id failed validation during
// prescription creation. It matches ErrInvalidDrug under errors.Is.
type DrugNotFoundError struct {
	ID uuid.UUID
}

func (e *DrugNotFoundError) Error() string {
	return fmt.Sprintf("drug with id %s not found", e.ID)
}

func (e *DrugNotFoundError) Is(target error) bool {
	return target == ErrInvalidDrug
}

// PatientResolver resolves a patient id by file number, creating the patient
// on first sight.
type PatientResolver interface {
	FindOrCreate(ctx context.Context, name, fileNumber string) (uuid.UUID, error)
}

// DoctorChecker reports whether an id belongs to a user with the doctor role.
type DoctorChecker interface {
	IsDoctor(ctx context.Context, id uuid.UUID) (bool, error)
}

// DrugCatalog reports whether a drug id exists in the catalog.
type DrugCatalog interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	prescriptions Repository
	patients      PatientResolver
	doctors       DoctorChecker
	drugs         DrugCatalog
	now           func() time.Time
}

func NewService(prescriptions Repository, patients PatientResolver, doctors DoctorChecker, drugs DrugCatalog) *Service {
	return &Service{
		prescriptions: prescriptions,
		patients:      patients,
		doctors:       doctors,
		drugs:         drugs,
		now:           time.Now,
	}
}

// SetClock overrides the clock used for label dates. Tests use this to pin
// the rendered date.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create validates the input, resolves the patient, and writes the
// prescription with its ordered drug links. Validation order: required
// fields, then doctor authorization, then drug existence. Nothing is
// persisted when validation fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Prescription, error) {
	if in.PatientName == "" || in.PatientFileNumber == "" || in.DoctorID == uuid.Nil || len(in.DrugIDs) == 0 {
		return nil, ErrMissingField
	}

	ok, err := s.doctors.IsDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("check doctor: %w", err)
	}
	if !ok {
		return nil, ErrUnauthorizedDoctor
	}

	for _, drugID := range in.DrugIDs {
		exists, err := s.drugs.Exists(ctx, drugID)
		if err != nil {
			return nil, fmt.Errorf("check drug %s: %w", drugID, err)
		}
		if !exists {
			return nil, &DrugNotFoundError{ID: drugID}
		}
	}

	patientID, err := s.patients.FindOrCreate(ctx, in.PatientName, in.PatientFileNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve patient: %w", err)
	}

	p := &Prescription{
		PatientID: patientID,
		DoctorID:  in.DoctorID,
		Status:    StatusPending,
	}
	if err := s.prescriptions.Create(ctx, p, in.DrugIDs); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}
	return p, nil
}

// Get returns the full prescription record with patient, doctor and ordered
// drugs.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	return s.prescriptions.GetDetail(ctx, id)
}

// UpdateStatus overwrites the prescription status. Any non-empty string is
// accepted; there is no transition state machine.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Detail, error) {
	if status == "" {
		return nil, ErrMissingField
	}
	if err := s.prescriptions.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.prescriptions.GetDetail(ctx, id)
}

// Labels renders one dispensing label per prescribed drug, in attachment
// order.
func (s *Service) Labels(ctx context.Context, id uuid.UUID) ([]string, error) {
	d, err := s.prescriptions.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(d.Drugs))
	date := s.now()
	for _, di := range d.Drugs {
		labels = append(labels, RenderLabel(d.Patient.Name, d.Patient.FileNumber, di, date))
	}
	return labels, nil
}
