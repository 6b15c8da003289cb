package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return r.listOrders(r.DB.WithContext(ctx).Where("user_id = ?", userID), offset, limit)
}

func (r *GormRepo) ListAllOrders(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	db := r.DB.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	return r.listOrders(db, offset, limit)
}

func (r *GormRepo) listOrders(db *gorm.DB, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Order{}
	if err := db.Session(&gorm.Session{}).Model(&models.Order{}).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// GetOrder loads an order with its lines. A nil userID skips the ownership filter.
func (r *GormRepo) GetOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	db := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id)
	if userID != uuid.Nil {
		db = db.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// TransitionOrder moves the order to status to only while it is still in status from.
// It reports whether a row changed.
func (r *GormRepo) TransitionOrder(ctx context.Context, id uint, from, to string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
