package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

// EnsureCart returns the caller's cart, creating it on first use. The unique
// user_id index makes concurrent first calls converge on one row.
func (r *GormRepo) EnsureCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error; err != nil {
		return nil, err
	}

	var stored models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// LockCart takes a row lock on the cart until the surrounding transaction
// ends. Callers must be inside Tx.
func (r *GormRepo) LockCart(ctx context.Context, cartID uint) error {
	var cart models.Cart
	return r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&cart, cartID).Error
}

func (r *GormRepo) GetCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments an existing line or inserts a new one. raced reports
// that the insert lost to a concurrent insert and was applied as an increment.
func (r *GormRepo) AddToCart(ctx context.Context, cartID, productID uint, qty int) (item *models.CartItem, raced bool, err error) {
	db := r.DB.WithContext(ctx)

	increment := func() (bool, error) {
		res := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		return res.RowsAffected > 0, res.Error
	}

	ok, err := increment()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		line := models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}
		err := db.Create(&line).Error
		switch {
		case err == nil:
			return &line, false, nil
		case errors.Is(err, gorm.ErrDuplicatedKey):
			raced = true
			if _, err := increment(); err != nil {
				return nil, raced, err
			}
		default:
			return nil, false, err
		}
	}

	var line models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&line).Error; err != nil {
		return nil, raced, err
	}
	return &line, raced, nil
}

func (r *GormRepo) SetCartItemQuantity(ctx context.Context, cartID, itemID uint, qty int) (*models.CartItem, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", qty)
	if res.Error != nil {
		return nil, res.Error
	}

	var line models.CartItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, cartID, itemID uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearCart deletes every line of the cart and reports how many went.
func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
