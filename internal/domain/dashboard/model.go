package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Notification summarizes one pending prescription for the dashboard.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	PatientName string    `json:"patient_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// DrugCount is the number of prescriptions referencing one catalog drug.
type DrugCount struct {
	Name  string
	Count int
}
