package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/cache"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) Notify(context.Context, string) error {
	n.calls++
	return n.err
}

func TestResolveNames(t *testing.T) {
	t.Parallel()

	names := map[uint]string{1: "Hex", 2: "Bolts"}
	assert.Equal(t, []string{"Hex", "7", "Bolts"}, resolveNames([]uint{1, 7, 2}, names))
	assert.Empty(t, resolveNames(nil, names))
}

func TestCategoryNames_CacheAndInvalidate(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	notifier := &countingNotifier{err: errors.New("no listener")}
	names := &CategoryNames{Repo: r, Cache: cache.New[map[uint]string](time.Minute), Notifier: notifier}

	c := &models.Category{Name: "Hex", Type: models.TypeFasteners}
	require.NoError(t, r.CreateCategory(ctx, c))
	p, err := r.CreateProduct(ctx, &models.Product{Name: "Hex Bolt", CategoryType: models.TypeFasteners}, []uint{c.ID})
	require.NoError(t, err)

	products := []models.Product{*p}
	require.NoError(t, names.Resolve(ctx, products))
	assert.Equal(t, []string{"Hex"}, products[0].Categories)

	_, err = r.RenameCategory(ctx, c.ID, "Hexagon")
	require.NoError(t, err)
	require.NoError(t, names.Resolve(ctx, products))
	assert.Equal(t, []string{"Hex"}, products[0].Categories, "served from cache")

	names.Invalidate(ctx)
	assert.Equal(t, 1, notifier.calls)
	require.NoError(t, names.Resolve(ctx, products))
	assert.Equal(t, []string{"Hexagon"}, products[0].Categories)
}
