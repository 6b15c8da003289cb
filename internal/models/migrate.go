package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Product{}, &ProductCategory{}, &Category{},
		&Cart{}, &CartItem{}, &WishlistItem{},
		&Order{}, &OrderItem{},
		&User{}, &RefreshToken{}, &Profile{}, &Address{}, &Contact{},
	)
}
