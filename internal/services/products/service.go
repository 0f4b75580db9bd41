// Package products implements the product catalog operations: CRUD plus
// category-filtered listing, with validation and reference checks applied
// before anything reaches the store.
package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"joyeria-system/internal/database/models"
	"joyeria-system/internal/errs"
	"joyeria-system/internal/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// CreateInput carries the fields accepted on product creation. Pointer
// fields distinguish "absent" from a legitimate zero value.
type CreateInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  uint
	MaterialID  uint
	Weight      *float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Product, error) {
	if err := requireFields(in); err != nil {
		return nil, err
	}

	// Existence checks and the insert below are separate store operations.
	// A concurrent category deletion in between is possible and accepted.
	if _, err := s.store.CategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("category")
		}
		return nil, fmt.Errorf("check category: %w", err)
	}
	if _, err := s.store.MaterialByID(ctx, in.MaterialID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("material")
		}
		return nil, fmt.Errorf("check material: %w", err)
	}

	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Stock:       stock,
		CategoryID:  in.CategoryID,
		MaterialID:  in.MaterialID,
		Weight:      *in.Weight,
		IsAvailable: true,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return s.Get(ctx, product.ID)
}

func requireFields(in CreateInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errs.Validation("name is required")
	case strings.TrimSpace(in.Description) == "":
		return errs.Validation("description is required")
	case in.Price == nil:
		return errs.Validation("price is required")
	case in.CategoryID == 0:
		return errs.Validation("category is required")
	case in.MaterialID == 0:
		return errs.Validation("material is required")
	case in.Weight == nil:
		return errs.Validation("weight is required")
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("product")
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// UpdateInput carries the optional fields of a partial update. Category and
// material references are not re-validated here; only creation checks them.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  *uint
	MaterialID  *uint
	Weight      *float64
	IsAvailable *bool
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Product, error) {
	if in.Stock != nil && *in.Stock < 0 {
		return nil, errs.Validation("stock cannot be negative")
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		fields["category_id"] = *in.CategoryID
	}
	if in.MaterialID != nil {
		fields["material_id"] = *in.MaterialID
	}
	if in.Weight != nil {
		fields["weight"] = *in.Weight
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}

	product, err := s.store.UpdateProduct(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("product")
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NotFound("product")
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return product, nil
}

// ListByCategory returns the category itself alongside its products so the
// response can echo the category name.
func (s *Service) ListByCategory(ctx context.Context, categoryID uint) (*models.Category, []models.Product, error) {
	category, err := s.store.CategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, errs.NotFound("category")
		}
		return nil, nil, fmt.Errorf("get category: %w", err)
	}

	products, err := s.store.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("list products by category: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return category, products, nil
}
