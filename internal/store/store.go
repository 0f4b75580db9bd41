// Package store owns all persisted state. Services receive a Store and
// never touch the database handle directly.
package store

import (
	"context"
	"errors"

	"joyeria-system/internal/database/models"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

type Store interface {
	CountCategories(ctx context.Context) (int64, error)
	CategoryByID(ctx context.Context, id uint) (*models.Category, error)
	CreateCategories(ctx context.Context, categories []*models.Category) error

	CountMaterials(ctx context.Context) (int64, error)
	MaterialByID(ctx context.Context, id uint) (*models.Material, error)
	CreateMaterials(ctx context.Context, materials []*models.Material) error

	CreateSuppliers(ctx context.Context, suppliers []*models.Supplier) error

	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	// ProductByID returns the product with Category and Material resolved.
	ProductByID(ctx context.Context, id uint) (*models.Product, error)
	// ListProducts returns every product, newest first, relations resolved.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// ProductsByCategory returns category members ordered by price descending.
	ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	// UpdateProduct applies the given column values and returns the updated
	// product with relations resolved.
	UpdateProduct(ctx context.Context, id uint, fields map[string]any) (*models.Product, error)
	// DeleteProduct removes the product and returns the removed record.
	DeleteProduct(ctx context.Context, id uint) (*models.Product, error)
	// ProductsBelowStock returns products with stock strictly below threshold.
	ProductsBelowStock(ctx context.Context, threshold int) ([]models.Product, error)

	CreateSales(ctx context.Context, sales []*models.Sale) error
}
