package transport

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"gte=0"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ToggleWishlistRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}
