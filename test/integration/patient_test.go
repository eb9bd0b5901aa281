package integration

import (
	"context"
	"testing"

	"github.com/pharmakit/pharmacy/internal/domain/patient"
)

func TestPatientFileNumberConflict(t *testing.T) {
	ctx := context.Background()
	resetDB(t, ctx)
	repo := patient.NewRepoPG(globalDB.Pool)

	t.Run("TryCreate", func(t *testing.T) {
		fileNumber := uniqueFileNumber("F")

		first := &patient.Patient{Name: "John Doe", FileNumber: fileNumber}
		created, err := repo.TryCreate(ctx, first)
		if err != nil {
			t.Fatalf("TryCreate: %v", err)
		}
		if !created {
			t.Fatal("expected first insert to create a row")
		}

		// Same file number again: the ON CONFLICT clause must swallow the
		// insert without an error, reporting no row created.
		second := &patient.Patient{Name: "Impostor", FileNumber: fileNumber}
		created, err = repo.TryCreate(ctx, second)
		if err != nil {
			t.Fatalf("TryCreate conflict: %v", err)
		}
		if created {
			t.Fatal("expected conflicting insert to create nothing")
		}

		fetched, err := repo.GetByFileNumber(ctx, fileNumber)
		if err != nil {
			t.Fatalf("GetByFileNumber: %v", err)
		}
		if fetched.ID != first.ID {
			t.Errorf("expected the original row %s, got %s", first.ID, fetched.ID)
		}
		if fetched.Name != "John Doe" {
			t.Errorf("existing patient name must not change, got %s", fetched.Name)
		}
	})

	t.Run("FindOrCreateConverges", func(t *testing.T) {
		svc := patient.NewService(repo)
		fileNumber := uniqueFileNumber("F")

		first, err := svc.FindOrCreate(ctx, "Jane Roe", fileNumber)
		if err != nil {
			t.Fatalf("FindOrCreate: %v", err)
		}
		second, err := svc.FindOrCreate(ctx, "Different Name", fileNumber)
		if err != nil {
			t.Fatalf("FindOrCreate repeat: %v", err)
		}
		if first != second {
			t.Errorf("expected one patient id, got %s and %s", first, second)
		}

		var count int
		err = globalDB.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM patients WHERE file_number = $1`, fileNumber).Scan(&count)
		if err != nil {
			t.Fatalf("count patients: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly 1 row, got %d", count)
		}
	})
}
