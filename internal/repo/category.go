package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context, typ string) ([]models.Category, error) {
	db := r.DB.WithContext(ctx).Model(&models.Category{})
	if typ != "" {
		db = db.Where("type = ?", typ)
	}

	items := []models.Category{}
	if err := db.Order("type ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) FindCategory(ctx context.Context, typ, name string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("type = ? AND name = ?", typ, name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// CategoriesByNames maps each known name of the given type to its id.
func (r *GormRepo) CategoriesByNames(ctx context.Context, typ string, names []string) (map[string]uint, error) {
	out := make(map[string]uint, len(names))
	if len(names) == 0 {
		return out, nil
	}

	var cats []models.Category
	if err := r.DB.WithContext(ctx).Where("type = ? AND name IN ?", typ, names).Find(&cats).Error; err != nil {
		return nil, err
	}
	for _, c := range cats {
		out[c.Name] = c.ID
	}
	return out, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

// UpsertCategory inserts (type, name) unless it already exists and returns the stored row.
func (r *GormRepo) UpsertCategory(ctx context.Context, typ, name string) (*models.Category, error) {
	cat := models.Category{Type: typ, Name: name}
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(&cat).Error; err != nil {
		return nil, err
	}
	return r.FindCategory(ctx, typ, name)
}

func (r *GormRepo) RenameCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	res := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetCategory(ctx, id)
}

// ProductIDsInCategory lists the products linked to the category.
func (r *GormRepo) ProductIDsInCategory(ctx context.Context, categoryID uint) ([]uint, error) {
	var ids []uint
	if err := r.DB.WithContext(ctx).Model(&models.ProductCategory{}).
		Where("category_id = ?", categoryID).
		Order("product_id ASC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteCategory removes the category and every product link pointing at it.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.Tx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.Where("category_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		res := tx.DB.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
