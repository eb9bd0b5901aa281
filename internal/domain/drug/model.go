package drug

import (
	"time"

	"github.com/google/uuid"
)

// Drug maps to the drugs table. Catalog entries are append-only: they are
// never updated or deleted once added.
type Drug struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Strength     string    `db:"strength" json:"strength"`
	Instructions string    `db:"instructions" json:"instructions"`
	Warnings     string    `db:"warnings" json:"warnings"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}
