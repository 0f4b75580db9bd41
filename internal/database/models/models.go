package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"joyeria-system/internal/errs"
)

// Closed value sets. Anything outside them is rejected before persistence.
var (
	Purities       = []string{"24K", "18K", "14K", "10K", "925", "950", "Other"}
	Colors         = []string{"Yellow", "White", "Rose", "Silver", "Other"}
	PaymentMethods = []string{"Cash", "CreditCard", "DebitCard", "Transfer"}
	MaterialTypes  = []string{"Gold", "Silver", "Platinum", "Diamonds", "Gemstones"}
)

// MinWeightGrams is the lightest product the catalog accepts.
const MinWeightGrams = 0.01

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func oneOf(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// StringArray is stored as a JSON-encoded text column.
type StringArray []string

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("failed to scan StringArray: %v", value)
		}
	}

	return json.Unmarshal(bytes, a)
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `gorm:"size:255;default:'/images/default-category.jpg'" json:"imageUrl"`
	DisplayOrder int       `gorm:"column:display_order;default:0" json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errs.Validation("category name is required")
	}
	return nil
}

type Material struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Purity       string          `gorm:"size:10;not null" json:"purity"`
	Color        string          `gorm:"size:20;not null" json:"color"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerGram"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (m *Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errs.Validation("material name is required")
	}
	if !oneOf(Purities, m.Purity) {
		return errs.Validation("invalid purity %q", m.Purity)
	}
	if !oneOf(Colors, m.Color) {
		return errs.Validation("invalid color %q", m.Color)
	}
	if m.PricePerGram.IsNegative() {
		return errs.Validation("pricePerGram cannot be negative")
	}
	return nil
}

type Supplier struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessName  string      `gorm:"size:150;not null" json:"businessName"`
	ContactName   string      `gorm:"size:100;not null" json:"contactName"`
	Email         string      `gorm:"size:150;not null" json:"email"`
	Phone         string      `gorm:"size:50;not null" json:"phone"`
	Address       string      `gorm:"type:text;not null" json:"address"`
	MaterialTypes StringArray `gorm:"type:text" json:"materialTypes"`
	Rating        int         `gorm:"default:3" json:"rating"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.BusinessName) == "" {
		return errs.Validation("supplier businessName is required")
	}
	if strings.TrimSpace(s.ContactName) == "" {
		return errs.Validation("supplier contactName is required")
	}
	if !emailPattern.MatchString(s.Email) {
		return errs.Validation("invalid email %q", s.Email)
	}
	if strings.TrimSpace(s.Phone) == "" {
		return errs.Validation("supplier phone is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		return errs.Validation("supplier address is required")
	}
	for _, mt := range s.MaterialTypes {
		if !oneOf(MaterialTypes, mt) {
			return errs.Validation("invalid material type %q", mt)
		}
	}
	if s.Rating < 1 || s.Rating > 5 {
		return errs.Validation("rating must be between 1 and 5")
	}
	return nil
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:150;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	CategoryID  uint            `gorm:"not null" json:"categoryId"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	MaterialID  uint            `gorm:"not null" json:"materialId"`
	Material    *Material       `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Weight      float64         `gorm:"not null" json:"weight"`
	IsAvailable bool            `gorm:"default:true" json:"isAvailable"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.Validation("product name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errs.Validation("product description is required")
	}
	if p.Price.IsNegative() {
		return errs.Validation("price cannot be negative")
	}
	if p.Stock < 0 {
		return errs.Validation("stock cannot be negative")
	}
	if p.CategoryID == 0 {
		return errs.Validation("category is required")
	}
	if p.MaterialID == 0 {
		return errs.Validation("material is required")
	}
	if p.Weight < MinWeightGrams {
		return errs.Validation("weight must be at least %v grams", MinWeightGrams)
	}
	return nil
}

type Sale struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint            `gorm:"not null" json:"productId"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unitPrice"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"totalPrice"`
	PaymentMethod string          `gorm:"size:20;not null" json:"paymentMethod"`
	ClientName    string          `gorm:"size:100" json:"clientName"`
	Seller        string          `gorm:"size:100;not null;default:'System'" json:"seller"`
	SaleDate      time.Time       `gorm:"autoCreateTime" json:"saleDate"`
}

func (s *Sale) Validate() error {
	if s.ProductID == 0 {
		return errs.Validation("sale product is required")
	}
	if s.Quantity < 1 {
		return errs.Validation("quantity must be at least 1")
	}
	if s.UnitPrice.IsNegative() {
		return errs.Validation("unitPrice cannot be negative")
	}
	if !oneOf(PaymentMethods, s.PaymentMethod) {
		return errs.Validation("invalid payment method %q", s.PaymentMethod)
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Material{},
		&Supplier{},
		&Product{},
		&Sale{},
	)
}
