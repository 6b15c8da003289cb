package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeFasteners  = "fasteners"
	TypeElectrical = "electrical"
)

func ValidType(t string) bool {
	return t == TypeFasteners || t == TypeElectrical
}

type Product struct {
	ID            uint                `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name          string              `gorm:"not null;index"               json:"name"`
	Description   string              `gorm:"not null;default:''"          json:"description"`
	ImageURL      string              `gorm:"not null;default:''"          json:"image_url"`
	CategoryType  string              `gorm:"not null;index"               json:"category_type"`
	IsNew         bool                `gorm:"not null;default:false"       json:"is_new"`
	Featured      bool                `gorm:"not null;default:false"       json:"featured"`
	Price         decimal.NullDecimal `gorm:"type:decimal(12,2)"           json:"price"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(12,2)"           json:"discount_price"`
	Stock         int                 `gorm:"not null;default:0"           json:"stock"`
	Weight        string              `gorm:"not null;default:''"          json:"weight,omitempty"`
	Dimensions    string              `gorm:"not null;default:''"          json:"dimensions,omitempty"`
	CreatedAt     time.Time           `gorm:"index"                        json:"created_at"`
	UpdatedAt     time.Time           `                                    json:"updated_at"`

	CategoryIDs []uint   `gorm:"-" json:"category_ids"`
	Categories  []string `gorm:"-" json:"categories"`
}

// EffectivePrice is the discount price when one is set, otherwise the list price.
func (p *Product) EffectivePrice() decimal.NullDecimal {
	if p.DiscountPrice.Valid {
		return p.DiscountPrice
	}
	return p.Price
}

type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey;autoIncrement:false"       json:"product_id"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index" json:"category_id"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_category_type_name" json:"name"`
	Type      string    `gorm:"not null;uniqueIndex:idx_category_type_name" json:"type"`
	CreatedAt time.Time `                                                  json:"created_at"`
}
