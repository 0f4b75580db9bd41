// Package seed populates the store with sample data on first start.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"joyeria-system/internal/database/models"
	"joyeria-system/internal/store"
)

// Run inserts the sample dataset if and only if the store holds no
// categories yet. A store that already has data makes this a no-op, so it
// is safe to call on every startup.
func Run(ctx context.Context, st store.Store, log *slog.Logger) error {
	count, err := st.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Info("seeding sample data")

	categories := []*models.Category{
		{Name: "Rings", Description: "Engagement rings and wedding bands", DisplayOrder: 1},
		{Name: "Necklaces", Description: "Necklaces and chokers", DisplayOrder: 2},
		{Name: "Bracelets", Description: "Bracelets and bangles", DisplayOrder: 3},
		{Name: "Earrings", Description: "Earrings and pendants", DisplayOrder: 4},
		{Name: "Watches", Description: "Luxury watches", DisplayOrder: 5},
	}
	if err := st.CreateCategories(ctx, categories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	materials := []*models.Material{
		{Name: "Yellow Gold 18K", Purity: "18K", Color: "Yellow", PricePerGram: decimal.NewFromInt(85000)},
		{Name: "White Gold 18K", Purity: "18K", Color: "White", PricePerGram: decimal.NewFromInt(90000)},
		{Name: "Rose Gold 18K", Purity: "18K", Color: "Rose", PricePerGram: decimal.NewFromInt(88000)},
		{Name: "Silver 925", Purity: "925", Color: "Silver", PricePerGram: decimal.NewFromInt(5000)},
		{Name: "Platinum", Purity: "950", Color: "White", PricePerGram: decimal.NewFromInt(150000)},
	}
	if err := st.CreateMaterials(ctx, materials); err != nil {
		return fmt.Errorf("seed materials: %w", err)
	}

	suppliers := []*models.Supplier{
		{
			BusinessName:  "Joyas Export S.A.",
			ContactName:   "Carlos Rodriguez",
			Email:         "carlos@joyasexport.com",
			Phone:         "+57 300 123 4567",
			Address:       "Calle 100 #20-30, Bogota",
			MaterialTypes: models.StringArray{"Gold", "Silver"},
			Rating:        5,
		},
		{
			BusinessName:  "Diamantes del Sur",
			ContactName:   "Maria Gonzalez",
			Email:         "maria@diamantessur.com",
			Phone:         "+57 310 987 6543",
			Address:       "Carrera 15 #85-20, Medellin",
			MaterialTypes: models.StringArray{"Diamonds", "Gemstones"},
			Rating:        4,
		},
		{
			BusinessName:  "Metales Preciosos Ltda.",
			ContactName:   "Juan Perez",
			Email:         "juan@metalespreciosos.com",
			Phone:         "+57 320 555 1234",
			Address:       "Av. Las Americas #45-67, Cali",
			MaterialTypes: models.StringArray{"Gold", "Silver", "Platinum"},
			Rating:        5,
		},
	}
	if err := st.CreateSuppliers(ctx, suppliers); err != nil {
		return fmt.Errorf("seed suppliers: %w", err)
	}

	products := []*models.Product{
		{
			Name:        "Solitaire Diamond Ring",
			Description: "Elegant solitaire ring with a 0.5 carat center diamond",
			Price:       decimal.NewFromInt(2500000),
			Stock:       5,
			CategoryID:  categories[0].ID,
			MaterialID:  materials[0].ID,
			Weight:      3.5,
			IsAvailable: true,
		},
		{
			Name:        "Pearl Necklace",
			Description: "Classic cultured pearl necklace with a white gold clasp",
			Price:       decimal.NewFromInt(1800000),
			Stock:       8,
			CategoryID:  categories[1].ID,
			MaterialID:  materials[1].ID,
			Weight:      15.2,
			IsAvailable: true,
		},
		{
			Name:        "Tennis Bracelet",
			Description: "Tennis bracelet with inlaid diamonds",
			Price:       decimal.NewFromInt(3200000),
			Stock:       3,
			CategoryID:  categories[2].ID,
			MaterialID:  materials[1].ID,
			Weight:      8.7,
			IsAvailable: true,
		},
		{
			Name:        "Gold Hoop Earrings",
			Description: "Hoop earrings in 18K yellow gold",
			Price:       decimal.NewFromInt(950000),
			Stock:       12,
			CategoryID:  categories[3].ID,
			MaterialID:  materials[0].ID,
			Weight:      2.3,
			IsAvailable: true,
		},
		{
			Name:        "Classic Watch",
			Description: "Automatic watch with a leather strap and steel case",
			Price:       decimal.NewFromInt(4500000),
			Stock:       2,
			CategoryID:  categories[4].ID,
			MaterialID:  materials[4].ID,
			Weight:      45.0,
			IsAvailable: true,
		},
	}
	for _, p := range products {
		if err := st.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	sales := []*models.Sale{
		{
			ProductID:     products[0].ID,
			Quantity:      1,
			UnitPrice:     decimal.NewFromInt(2500000),
			TotalPrice:    decimal.NewFromInt(2500000),
			PaymentMethod: "CreditCard",
			ClientName:    "Ana Martinez",
			Seller:        "System",
		},
		{
			ProductID:     products[1].ID,
			Quantity:      2,
			UnitPrice:     decimal.NewFromInt(1800000),
			TotalPrice:    decimal.NewFromInt(3600000),
			PaymentMethod: "Cash",
			ClientName:    "Roberto Sanchez",
			Seller:        "System",
		},
		{
			ProductID:     products[2].ID,
			Quantity:      1,
			UnitPrice:     decimal.NewFromInt(3200000),
			TotalPrice:    decimal.NewFromInt(3200000),
			PaymentMethod: "Transfer",
			ClientName:    "Laura Gomez",
			Seller:        "System",
		},
		{
			ProductID:     products[3].ID,
			Quantity:      3,
			UnitPrice:     decimal.NewFromInt(950000),
			TotalPrice:    decimal.NewFromInt(2850000),
			PaymentMethod: "DebitCard",
			ClientName:    "Carlos Ruiz",
			Seller:        "System",
		},
	}
	if err := st.CreateSales(ctx, sales); err != nil {
		return fmt.Errorf("seed sales: %w", err)
	}

	log.Info("sample data created",
		"categories", len(categories),
		"materials", len(materials),
		"suppliers", len(suppliers),
		"products", len(products),
		"sales", len(sales),
	)
	return nil
}
