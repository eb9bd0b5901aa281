package dashboard

import "context"

type Repository interface {
	// PendingPrescriptions returns prescriptions with status "pending",
	// newest first.
	PendingPrescriptions(ctx context.Context) ([]*Notification, error)
	// DrugPrescriptionCounts returns, for every catalog drug, the number of
	// prescriptions referencing it. Drugs never prescribed appear with a
	// count of zero.
	DrugPrescriptionCounts(ctx context.Context) ([]DrugCount, error)
}
