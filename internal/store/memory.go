package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"joyeria-system/internal/database/models"
)

// Memory is an in-process Store guarded by a RWMutex. It backs the test
// suite and lets the binary run without a database during development.
type Memory struct {
	mu sync.RWMutex

	categories map[uint]models.Category
	materials  map[uint]models.Material
	suppliers  map[uint]models.Supplier
	products   map[uint]models.Product
	sales      map[uint]models.Sale

	categorySeq uint
	materialSeq uint
	supplierSeq uint
	productSeq  uint
	saleSeq     uint
}

func NewMemory() *Memory {
	return &Memory{
		categories: make(map[uint]models.Category),
		materials:  make(map[uint]models.Material),
		suppliers:  make(map[uint]models.Supplier),
		products:   make(map[uint]models.Product),
		sales:      make(map[uint]models.Sale),
	}
}

func (m *Memory) CountCategories(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.categories)), nil
}

func (m *Memory) CategoryByID(_ context.Context, id uint) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

func (m *Memory) CreateCategories(_ context.Context, categories []*models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		m.categorySeq++
		c.ID = m.categorySeq
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		m.categories[c.ID] = *c
	}
	return nil
}

func (m *Memory) CountMaterials(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.materials)), nil
}

func (m *Memory) MaterialByID(_ context.Context, id uint) (*models.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	material, ok := m.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &material, nil
}

func (m *Memory) CreateMaterials(_ context.Context, materials []*models.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mat := range materials {
		m.materialSeq++
		mat.ID = m.materialSeq
		if mat.CreatedAt.IsZero() {
			mat.CreatedAt = time.Now()
		}
		m.materials[mat.ID] = *mat
	}
	return nil
}

func (m *Memory) CreateSuppliers(_ context.Context, suppliers []*models.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range suppliers {
		m.supplierSeq++
		s.ID = m.supplierSeq
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now()
		}
		m.suppliers[s.ID] = *s
	}
	return nil
}

func (m *Memory) CountProducts(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

func (m *Memory) CreateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productSeq++
	product.ID = m.productSeq
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	stored := *product
	stored.Category = nil
	stored.Material = nil
	m.products[stored.ID] = stored
	return nil
}

// resolve attaches copies of the referenced category and material. Dangling
// references stay nil, mirroring the permissive relational behavior.
func (m *Memory) resolve(p models.Product) models.Product {
	if category, ok := m.categories[p.CategoryID]; ok {
		c := category
		p.Category = &c
	}
	if material, ok := m.materials[p.MaterialID]; ok {
		mat := material
		p.Material = &mat
	}
	return p
}

func (m *Memory) ProductByID(_ context.Context, id uint) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	resolved := m.resolve(product)
	return &resolved, nil
}

func (m *Memory) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, m.resolve(p))
	}
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID > products[j].ID
	})
	return products, nil
}

func (m *Memory) ProductsByCategory(_ context.Context, categoryID uint) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []models.Product
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			products = append(products, m.resolve(p))
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Price.GreaterThan(products[j].Price)
	})
	return products, nil
}

func (m *Memory) UpdateProduct(_ context.Context, id uint, fields map[string]any) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(decimal.Decimal)
		case "stock":
			product.Stock = value.(int)
		case "weight":
			product.Weight = value.(float64)
		case "is_available":
			product.IsAvailable = value.(bool)
		case "category_id":
			product.CategoryID = value.(uint)
		case "material_id":
			product.MaterialID = value.(uint)
		}
	}
	m.products[id] = product
	resolved := m.resolve(product)
	return &resolved, nil
}

func (m *Memory) DeleteProduct(_ context.Context, id uint) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.products, id)
	resolved := m.resolve(product)
	return &resolved, nil
}

func (m *Memory) ProductsBelowStock(_ context.Context, threshold int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var products []models.Product
	for _, p := range m.products {
		if p.Stock < threshold {
			products = append(products, m.resolve(p))
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (m *Memory) CreateSales(_ context.Context, sales []*models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range sales {
		m.saleSeq++
		s.ID = m.saleSeq
		if s.SaleDate.IsZero() {
			s.SaleDate = time.Now()
		}
		stored := *s
		stored.Product = nil
		m.sales[stored.ID] = stored
	}
	return nil
}
