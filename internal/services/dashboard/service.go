// Package dashboard aggregates inventory statistics. Every call recomputes
// from the store; nothing is memoized.
package dashboard

import (
	"context"
	"fmt"

	"joyeria-system/internal/database/models"
	"joyeria-system/internal/store"
)

// LowStockThreshold marks a product as low stock when its stock falls
// strictly below this value.
const LowStockThreshold = 5

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

type Stats struct {
	TotalProducts   int64            `json:"totalProducts"`
	TotalCategories int64            `json:"totalCategories"`
	TotalMaterials  int64            `json:"totalMaterials"`
	LowStock        []models.Product `json:"lowStock"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	totalProducts, err := s.store.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	totalCategories, err := s.store.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	totalMaterials, err := s.store.CountMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}
	lowStock, err := s.store.ProductsBelowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	if lowStock == nil {
		lowStock = []models.Product{}
	}

	return &Stats{
		TotalProducts:   totalProducts,
		TotalCategories: totalCategories,
		TotalMaterials:  totalMaterials,
		LowStock:        lowStock,
	}, nil
}
