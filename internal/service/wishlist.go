package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

// Snapshot is the product data stored with a wishlist row. It is never refreshed.
type Snapshot struct {
	Name     string
	ImageURL string
	Price    decimal.NullDecimal
}

func (s *WishlistService) IsMember(ctx context.Context, userID uuid.UUID, productID uint) (bool, uint, error) {
	item, err := s.Repo.FindWishlistItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, storeErr("find wishlist item", err)
	}
	return true, item.ID, nil
}

// Toggle removes the product from the wishlist when present and adds it
// otherwise. It returns the membership after the call. A nil snapshot is
// taken from the catalog.
func (s *WishlistService) Toggle(ctx context.Context, userID uuid.UUID, productID uint, snap *Snapshot) (bool, error) {
	if productID == 0 {
		return false, fmt.Errorf("product id is required: %w", ErrValidation)
	}

	var member bool
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		n, err := tx.DeleteWishlistByProduct(ctx, userID, productID)
		if err != nil {
			return err
		}
		if n > 0 {
			member = false
			return nil
		}

		if snap == nil {
			p, err := tx.GetProduct(ctx, productID)
			if err != nil {
				return err
			}
			snap = &Snapshot{Name: p.Name, ImageURL: p.ImageURL, Price: p.EffectivePrice()}
		}
		member = true
		return tx.InsertWishlistItem(ctx, &models.WishlistItem{
			UserID:    userID,
			ProductID: productID,
			Name:      snap.Name,
			ImageURL:  snap.ImageURL,
			Price:     snap.Price,
		})
	})
	if err != nil {
		return false, storeErr("toggle wishlist", err)
	}
	return member, nil
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := s.Repo.ListWishlist(ctx, userID)
	if err != nil {
		return nil, storeErr("list wishlist", err)
	}
	return items, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, itemID uint) error {
	return storeErr("remove wishlist item", s.Repo.DeleteWishlistItem(ctx, userID, itemID))
}
