package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/events"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
)

func patchDiscount(v string) transport.PatchProductRequest {
	return transport.PatchProductRequest{DiscountPrice: money(v)}
}

func placeOrder(t *testing.T, user uuid.UUID) (*OrderService, *models.Order, *events.Recorder) {
	t.Helper()
	s, cat, rec := newCart(t)
	ctx := context.Background()
	p := mustProduct(t, cat, "Hex Bolt", models.TypeFasteners, "5")
	_, err := s.AddItem(ctx, user, p.ID, 1)
	require.NoError(t, err)
	order, err := s.Checkout(ctx, user)
	require.NoError(t, err)
	return &OrderService{Repo: s.Repo, Events: rec}, order, rec
}

func TestOrders_OwnerScoped(t *testing.T) {
	user := uuid.New()
	s, order, _ := placeOrder(t, user)
	ctx := context.Background()

	total, orders, err := s.ListOrders(ctx, user, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 1)

	got, err := s.GetOrder(ctx, user, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = s.GetOrder(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.CancelOrder(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOrder_OnlyWhilePending(t *testing.T) {
	user := uuid.New()
	s, order, rec := placeOrder(t, user)
	ctx := context.Background()

	got, err := s.CancelOrder(ctx, user, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)

	_, err = s.CancelOrder(ctx, user, order.ID)
	assert.ErrorIs(t, err, ErrConflict)

	evs := rec.Events(events.TopicOrders)
	require.Len(t, evs, 2)
	assert.Equal(t, "order_status_changed", evs[1].Event["type"])
}

func TestCancelOrder_RejectsProcessing(t *testing.T) {
	user := uuid.New()
	s, order, _ := placeOrder(t, user)
	ctx := context.Background()

	_, err := s.UpdateOrderStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)

	_, err = s.CancelOrder(ctx, user, order.ID)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := s.GetOrder(ctx, user, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, got.Status)

	got, err = s.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	user := uuid.New()
	s, order, _ := placeOrder(t, user)
	ctx := context.Background()

	_, err := s.UpdateOrderStatus(ctx, order.ID, "lost")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrConflict)

	for _, st := range []string{models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered} {
		got, err := s.UpdateOrderStatus(ctx, order.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	_, err = s.CancelOrder(ctx, user, order.ID)
	assert.ErrorIs(t, err, ErrConflict)

	total, items, err := s.ListAllOrders(ctx, models.OrderStatusDelivered, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[models.OrderStatusDelivered])

	_, _, err = s.ListAllOrders(ctx, "lost", 1, 10)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateOrderStatus(ctx, 999, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}
