package recommend

import (
	"context"
	"sort"

	"mocktail/internal/adapter/logger"
	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

type Service struct {
	store  interfaces.HistoryStore
	logger logger.Logger
}

func NewService(store interfaces.HistoryStore, logger logger.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) TopDrinks(ctx context.Context, limit int) ([]string, error) {
	history, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("history_load_failed", "Failed to load order history", "", nil, err)
		return nil, err
	}

	return TopDrinks(history, limit), nil
}

// TopDrinks returns up to limit drink names ranked by cumulative ordered
// quantity, highest first. Ties rank by first occurrence in history,
// earliest first; the order of equal counts is deliberate, not incidental.
func TopDrinks(history []domain.OrderItem, limit int) []string {
	if limit <= 0 || len(history) == 0 {
		return nil
	}

	totals := make(map[string]int)
	var names []string // first-occurrence order

	for _, item := range history {
		if item.DrinkName == "" {
			continue
		}
		if _, seen := totals[item.DrinkName]; !seen {
			names = append(names, item.DrinkName)
		}
		totals[item.DrinkName] += item.Quantity
	}

	// Stable sort over the first-occurrence ordering gives the tie-break.
	sort.SliceStable(names, func(i, j int) bool {
		return totals[names[i]] > totals[names[j]]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
