package transport

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string           `json:"name"           validate:"required,max=200"`
	Description   string           `json:"description"    validate:"max=5000"`
	ImageURL      string           `json:"image_url"      validate:"max=1000"`
	CategoryType  string           `json:"category_type"  validate:"required,oneof=fasteners electrical"`
	CategoryIDs   []uint           `json:"category_ids"`
	CategoryNames []string         `json:"category_names" validate:"dive,required"`
	IsNew         bool             `json:"is_new"`
	Featured      bool             `json:"featured"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	Stock         int              `json:"stock"          validate:"gte=0"`
	Weight        string           `json:"weight"         validate:"max=100"`
	Dimensions    string           `json:"dimensions"     validate:"max=100"`
}

// PatchProductRequest is a partial update. It has no id field, so an id sent
// in the body never reaches the store.
type PatchProductRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"    validate:"omitempty,max=5000"`
	ImageURL      *string          `json:"image_url"      validate:"omitempty,max=1000"`
	CategoryType  *string          `json:"category_type"  validate:"omitempty,oneof=fasteners electrical"`
	CategoryIDs   *[]uint          `json:"category_ids"`
	CategoryNames *[]string        `json:"category_names"`
	IsNew         *bool            `json:"is_new"`
	Featured      *bool            `json:"featured"`
	Price         *decimal.Decimal `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	ClearPrice    bool             `json:"clear_price"`
	ClearDiscount bool             `json:"clear_discount"`
	Stock         *int             `json:"stock"          validate:"omitempty,gte=0"`
	Weight        *string          `json:"weight"         validate:"omitempty,max=100"`
	Dimensions    *string          `json:"dimensions"     validate:"omitempty,max=100"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=fasteners electrical"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
