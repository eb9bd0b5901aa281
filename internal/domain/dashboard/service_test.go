package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	pending []*Notification
	counts  []DrugCount
}

func (m *mockRepo) PendingPrescriptions(_ context.Context) ([]*Notification, error) {
	if m.pending == nil {
		return []*Notification{}, nil
	}
	return m.pending, nil
}

func (m *mockRepo) DrugPrescriptionCounts(_ context.Context) ([]DrugCount, error) {
	return m.counts, nil
}

func TestPendingNotifications(t *testing.T) {
	newer := &Notification{ID: uuid.New(), PatientName: "John Doe", CreatedAt: time.Now()}
	older := &Notification{ID: uuid.New(), PatientName: "Jane Roe", CreatedAt: time.Now().Add(-time.Hour)}
	svc := NewService(&mockRepo{pending: []*Notification{newer, older}})

	items, err := svc.PendingNotifications(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if items[0].ID != newer.ID {
		t.Error("expected newest notification first")
	}
}

func TestDrugStatistics(t *testing.T) {
	svc := NewService(&mockRepo{counts: []DrugCount{
		{Name: "Amoxicillin", Count: 2},
		{Name: "Ibuprofen", Count: 1},
		{Name: "Metformin", Count: 0},
	}})

	stats, err := svc.DrugStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int{"Amoxicillin": 2, "Ibuprofen": 1, "Metformin": 0}
	if len(stats) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(stats))
	}
	for name, count := range want {
		if stats[name] != count {
			t.Errorf("%s: expected %d, got %d", name, count, stats[name])
		}
	}
}

func TestDrugStatistics_EmptyCatalog(t *testing.T) {
	svc := NewService(&mockRepo{})

	stats, err := svc.DrugStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("expected empty stats, got %v", stats)
	}
}
