package prescription

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the status every prescription starts in. Later statuses
// are free-form strings supplied by the caller (e.g. "ready", "dispensed").
const StatusPending = "pending"

// Prescription maps to the prescriptions table.
type Prescription struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PatientInfo is the patient summary embedded in a prescription detail.
type PatientInfo struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	FileNumber string    `json:"file_number"`
}

// DoctorInfo is the prescriber summary embedded in a prescription detail.
type DoctorInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// DrugInfo is one prescribed drug, in attachment order.
type DrugInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Strength     string    `json:"strength"`
	Instructions string    `json:"instructions"`
	Warnings     string    `json:"warnings"`
}

// Detail is a prescription joined with its patient, doctor and ordered drugs.
type Detail struct {
	ID        uuid.UUID   `json:"id"`
	Patient   PatientInfo `json:"patient"`
	Doctor    DoctorInfo  `json:"doctor"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Drugs     []DrugInfo  `json:"prescribed_drugs"`
}

// CreateInput carries the fields needed to create a prescription.
type CreateInput struct {
	PatientName       string
	PatientFileNumber string
	DoctorID          uuid.UUID
	DrugIDs           []uuid.UUID
}
