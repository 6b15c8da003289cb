package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

// GetProfile returns the stored profile or an empty one for a user that never saved it.
func (r *GormRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) SaveProfile(ctx context.Context, p *models.Profile) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone", "company", "updated_at"}),
		}).
		Create(p).Error
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	items := []models.Address{}
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("is_default DESC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetAddress(ctx context.Context, userID uuid.UUID, id uint) (*models.Address, error) {
	var a models.Address
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAddress creates or updates an address. The first address of a user
// becomes the default, and a default address clears the flag on the others.
func (r *GormRepo) SaveAddress(ctx context.Context, a *models.Address) error {
	return r.Tx(ctx, func(tx *GormRepo) error {
		var count int64
		if err := tx.DB.Model(&models.Address{}).Where("user_id = ? AND id <> ?", a.UserID, a.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			a.IsDefault = true
		}
		if a.IsDefault {
			if err := tx.DB.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", a.UserID, a.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		if a.ID == 0 {
			return tx.DB.Create(a).Error
		}
		return tx.DB.Model(a).
			Select("label", "line1", "line2", "city", "state", "postal_code", "country", "is_default").
			Updates(a).Error
	})
}

func (r *GormRepo) DeleteAddress(ctx context.Context, userID uuid.UUID, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) ListContacts(ctx context.Context, offset, limit int) (int64, []models.Contact, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Contact{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Contact{}
	if err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
