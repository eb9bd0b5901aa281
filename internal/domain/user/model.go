package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold. Prescriptions may only be created on behalf of a
// user with RoleDoctor.
const (
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
)

// User maps to the users table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
