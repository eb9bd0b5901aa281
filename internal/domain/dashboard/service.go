package dashboard

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) PendingNotifications(ctx context.Context) ([]*Notification, error) {
	return s.repo.PendingPrescriptions(ctx)
}

// DrugStatistics returns a drug-name-to-count map covering every catalog
// drug, including those never prescribed (count 0).
func (s *Service) DrugStatistics(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.DrugPrescriptionCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(counts))
	for _, dc := range counts {
		stats[dc.Name] = dc.Count
	}
	return stats, nil
}
