package service

import (
	"context"
	"strings"

	"github.com/guttosm/pricemachine/internal/domain/models"
	"github.com/guttosm/pricemachine/internal/metrics"
	"github.com/guttosm/pricemachine/internal/storage"
)

// PriceService answers product queries over the aggregate store.
type PriceService interface {
	// Search returns records whose product contains query (case-insensitive),
	// ordered by ascending price per unit. Never nil.
	Search(ctx context.Context, query string) []models.PriceRecord
	// All returns every record ordered by ascending price per unit.
	All(ctx context.Context) []models.PriceRecord
	// Len reports the number of records available.
	Len() int
}

type priceService struct {
	store storage.PriceStore
}

func NewPriceService(store storage.PriceStore) PriceService {
	return &priceService{store: store}
}

func (s *priceService) Search(_ context.Context, query string) []models.PriceRecord {
	needle := strings.ToLower(query)

	matches := make([]models.PriceRecord, 0)
	for _, r := range s.store.All() {
		if strings.Contains(strings.ToLower(r.Product), needle) {
			matches = append(matches, r)
		}
	}
	models.SortByPricePerUnit(matches)

	metrics.RecordSearch(len(matches))
	return matches
}

func (s *priceService) All(_ context.Context) []models.PriceRecord {
	all := s.store.All()
	models.SortByPricePerUnit(all)
	return all
}

func (s *priceService) Len() int {
	return s.store.Len()
}
