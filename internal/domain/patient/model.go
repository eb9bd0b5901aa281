package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. FileNumber is the external business
// key; it is unique and patients are resolved by it.
type Patient struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	FileNumber string    `db:"file_number" json:"file_number"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
