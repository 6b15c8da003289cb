package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

const (
	SortCreatedAt = "created_at"
	SortName      = "name"
	SortPrice     = "price"
)

// Keyset is the position after which the next page starts.
type Keyset struct {
	Value any
	ID    uint
}

type ProductQuery struct {
	Type        string
	CategoryIDs []uint
	SortKey     string
	Desc        bool
	Limit       int
	After       *Keyset
}

func sortExpr(key string) string {
	switch key {
	case SortName:
		return "name"
	case SortPrice:
		return "CAST(COALESCE(price, 0) AS NUMERIC)"
	default:
		return "created_at"
	}
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListAllProducts(ctx context.Context, typ string) ([]models.Product, error) {
	db := r.DB.WithContext(ctx).Model(&models.Product{})
	if typ != "" {
		db = db.Where("category_type = ?", typ)
	}

	items := []models.Product{}
	if err := db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListProducts applies the server side part of a catalog query: type equality,
// any-of category membership, ordering and keyset pagination.
func (r *GormRepo) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	db := r.DB.WithContext(ctx).Model(&models.Product{})

	if q.Type != "" {
		db = db.Where("category_type = ?", q.Type)
	}
	if len(q.CategoryIDs) > 0 {
		sub := r.DB.Model(&models.ProductCategory{}).Select("product_id").Where("category_id IN ?", q.CategoryIDs)
		db = db.Where("id IN (?)", sub)
	}

	col := sortExpr(q.SortKey)
	dir, op := "ASC", ">"
	if q.Desc {
		dir, op = "DESC", "<"
	}

	if q.After != nil {
		db = db.Where(
			fmt.Sprintf("((%s %s ?) OR (%s = ? AND id %s ?))", col, op, col, op),
			q.After.Value, q.After.Value, q.After.ID,
		)
	}

	items := []models.Product{}
	err := db.Order(col + " " + dir).Order("id " + dir).Limit(q.Limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	out := make(map[uint]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

func (r *GormRepo) FindProductByTypeName(ctx context.Context, typ, name string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("category_type = ? AND name = ?", typ, name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CategoryLinks returns the category ids linked to each of the given products.
func (r *GormRepo) CategoryLinks(ctx context.Context, productIDs []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	var links []models.ProductCategory
	if err := r.DB.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("product_id ASC, category_id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	for _, l := range links {
		out[l.ProductID] = append(out[l.ProductID], l.CategoryID)
	}
	return out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, categoryIDs []uint) (*models.Product, error) {
	err := r.Tx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.Create(prod).Error; err != nil {
			return err
		}
		return tx.replaceLinks(prod.ID, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	prod.CategoryIDs = uniqueIDs(categoryIDs)
	return prod, nil
}

// UpdateProduct writes the given columns; links are replaced only when
// categoryIDs is non-nil.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, updates map[string]any, categoryIDs []uint) (*models.Product, error) {
	var prod models.Product
	err := r.Tx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.Where("id = ?", id).First(&prod).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.DB.Model(&prod).Updates(updates).Error; err != nil {
				return err
			}
		}
		if categoryIDs != nil {
			if err := tx.replaceLinks(id, categoryIDs); err != nil {
				return err
			}
		}
		return tx.DB.Where("id = ?", id).First(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) replaceLinks(productID uint, categoryIDs []uint) error {
	if err := r.DB.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	ids := uniqueIDs(categoryIDs)
	links := make([]models.ProductCategory, 0, len(ids))
	for _, cid := range ids {
		links = append(links, models.ProductCategory{ProductID: productID, CategoryID: cid})
	}
	return r.DB.Create(&links).Error
}

func uniqueIDs(in []uint) []uint {
	out := make([]uint, 0, len(in))
	seen := make(map[uint]struct{}, len(in))
	for _, id := range in {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.Tx(ctx, func(tx *GormRepo) error {
		if err := tx.DB.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
			return err
		}
		res := tx.DB.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
