package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/events"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/util"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func validStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, size int) (int64, []models.Order, error) {
	offset, limit := util.Calculate(page, size)
	total, orders, err := s.Repo.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, storeErr("list orders", err)
	}
	return total, orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("owner is required: %w", ErrUnauthorized)
	}
	order, err := s.Repo.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, storeErr("get order", err)
	}
	return order, nil
}

// CancelOrder cancels the caller's own order while it is still pending.
func (s *OrderService) CancelOrder(ctx context.Context, userID uuid.UUID, id uint) (*models.Order, error) {
	order, err := s.GetOrder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order %d is %s and can no longer be cancelled: %w", order.ID, order.Status, ErrConflict)
	}
	return s.transition(ctx, order, models.OrderStatusCancelled)
}

func (s *OrderService) ListAllOrders(ctx context.Context, status string, page, size int) (int64, []models.Order, error) {
	if status != "" && !validStatus(status) {
		return 0, nil, fmt.Errorf("unknown order status %q: %w", status, ErrValidation)
	}
	offset, limit := util.Calculate(page, size)
	total, orders, err := s.Repo.ListAllOrders(ctx, status, offset, limit)
	if err != nil {
		return 0, nil, storeErr("list all orders", err)
	}
	return total, orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrValidation)
	}
	order, err := s.Repo.GetOrder(ctx, uuid.Nil, id)
	if err != nil {
		return nil, storeErr("get order", err)
	}
	return s.transition(ctx, order, status)
}

func (s *OrderService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.Repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, storeErr("count orders", err)
	}
	return counts, nil
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, to string) (*models.Order, error) {
	from := order.Status
	if !models.CanTransition(from, to) {
		return nil, fmt.Errorf("order %d cannot move from %s to %s: %w", order.ID, from, to, ErrConflict)
	}

	ok, err := s.Repo.TransitionOrder(ctx, order.ID, from, to)
	if err != nil {
		return nil, storeErr("transition order", err)
	}
	if !ok {
		return nil, fmt.Errorf("order %d changed concurrently: %w", order.ID, ErrConflict)
	}
	order.Status = to

	publish(ctx, s.Events, events.TopicOrders, strconv.FormatUint(uint64(order.ID), 10), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"userID":  order.UserID.String(),
		"from":    from,
		"to":      to,
	})
	return order, nil
}
