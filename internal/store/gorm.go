package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"joyeria-system/internal/database/models"
)

// Gorm is the production Store backed by a gorm connection.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Gorm) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}

func (s *Gorm) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *Gorm) CreateCategories(ctx context.Context, categories []*models.Category) error {
	return s.db.WithContext(ctx).Create(categories).Error
}

func (s *Gorm) CountMaterials(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Material{}).Count(&count).Error
	return count, err
}

func (s *Gorm) MaterialByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	if err := s.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, translate(err)
	}
	return &material, nil
}

func (s *Gorm) CreateMaterials(ctx context.Context, materials []*models.Material) error {
	return s.db.WithContext(ctx).Create(materials).Error
}

func (s *Gorm) CreateSuppliers(ctx context.Context, suppliers []*models.Supplier) error {
	return s.db.WithContext(ctx).Create(suppliers).Error
}

func (s *Gorm) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (s *Gorm) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *Gorm) resolved(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Category").Preload("Material")
}

func (s *Gorm) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.resolved(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *Gorm) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.resolved(ctx).Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

func (s *Gorm) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.resolved(ctx).
		Where("category_id = ?", categoryID).
		Order("price DESC").
		Find(&products).Error
	return products, err
}

func (s *Gorm) UpdateProduct(ctx context.Context, id uint, fields map[string]any) (*models.Product, error) {
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.ProductByID(ctx, id)
}

func (s *Gorm) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Gorm) ProductsBelowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := s.resolved(ctx).Where("stock < ?", threshold).Find(&products).Error
	return products, err
}

func (s *Gorm) CreateSales(ctx context.Context, sales []*models.Sale) error {
	return s.db.WithContext(ctx).Create(sales).Error
}
