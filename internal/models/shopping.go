package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `                                   json:"created_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                  json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product"     json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product"     json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"       json:"quantity"`
	CreatedAt time.Time `                                                 json:"created_at"`
}

type WishlistItem struct {
	ID        uint                `gorm:"primaryKey;autoIncrement"                           json:"id"`
	UserID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint                `gorm:"not null;uniqueIndex:idx_wishlist_user_product"     json:"product_id"`
	Name      string              `gorm:"not null;default:''"                                json:"name"`
	ImageURL  string              `gorm:"not null;default:''"                                json:"image_url"`
	Price     decimal.NullDecimal `gorm:"type:decimal(12,2)"                                 json:"price"`
	CreatedAt time.Time           `                                                          json:"created_at"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"     json:"user_id"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"total"`
	Status    string          `gorm:"not null;index"               json:"status"`
	CreatedAt time.Time       `gorm:"index"                        json:"created_at"`
	UpdatedAt time.Time       `                                    json:"updated_at"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID"           json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"not null;index"              json:"order_id"`
	ProductID uint            `gorm:"not null"                    json:"product_id"`
	Name      string          `gorm:"not null"                    json:"name"`
	Quantity  int             `gorm:"not null;check:quantity>0"   json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}
