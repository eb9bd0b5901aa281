package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// Execer is the subset of pgxpool.Pool the seeder needs, so tests can run it
// against a stub.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SeedUser describes a user fixture. Password is the plaintext credential;
// the seeder stores only its bcrypt hash.
type SeedUser struct {
	Username string
	Password string
	Role     string
}

// SeedDrug describes a drug catalog fixture.
type SeedDrug struct {
	Name         string
	Strength     string
	Instructions string
	Warnings     string
}

// DefaultSeedUsers are the sample accounts created on first run.
var DefaultSeedUsers = []SeedUser{
	{Username: "testdoctor", Password: "password123", Role: "doctor"},
	{Username: "testpharmacist", Password: "pharmacypass", Role: "pharmacist"},
}

// DefaultSeedDrugs are the sample catalog entries created on first run.
var DefaultSeedDrugs = []SeedDrug{
	{Name: "Amoxicillin", Strength: "250mg", Instructions: "Take one tablet every 8 hours", Warnings: "May cause allergic reaction."},
	{Name: "Lisinopril", Strength: "10mg", Instructions: "Take one tablet daily", Warnings: "Monitor blood pressure."},
	{Name: "Metformin", Strength: "500mg", Instructions: "Take one tablet twice daily with meals", Warnings: "May cause gastrointestinal upset."},
}

// Seed inserts the given user and drug fixtures, skipping any that already
// exist. It is keyed on username and drug name, so re-running is a no-op.
func Seed(ctx context.Context, conn Execer, users []SeedUser, drugs []SeedDrug) error {
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		_, err = conn.Exec(ctx, `
			INSERT INTO users (id, username, password_hash, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (username) DO NOTHING`,
			uuid.New(), u.Username, string(hash), u.Role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	for _, d := range drugs {
		_, err := conn.Exec(ctx, `
			INSERT INTO drugs (id, name, strength, instructions, warnings)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM drugs WHERE name = $2)`,
			uuid.New(), d.Name, d.Strength, d.Instructions, d.Warnings)
		if err != nil {
			return fmt.Errorf("seed drug %s: %w", d.Name, err)
		}
	}

	return nil
}
