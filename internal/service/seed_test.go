package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/fixtures"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
)

func TestMigrate_SeedsOnce(t *testing.T) {
	cat, _ := newCatalog(t)
	s := &SeedService{Repo: cat.Repo, Names: cat.Names}
	ctx := context.Background()

	res, err := s.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(fixtures.Fasteners)+len(fixtures.Electrical), res.Products)
	assert.Equal(t,
		len(fixtures.CategoryNames(fixtures.Fasteners))+len(fixtures.CategoryNames(fixtures.Electrical)),
		res.Categories)

	_, err = s.Migrate(ctx)
	assert.ErrorIs(t, err, ErrAlreadySeeded)

	all, err := cat.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, res.Products)

	fasteners, err := cat.ListByType(ctx, models.TypeFasteners)
	require.NoError(t, err)
	require.Len(t, fasteners, len(fixtures.Fasteners))
	for _, p := range fasteners {
		assert.NotEmpty(t, p.Categories, p.Name)
		assert.Len(t, p.Categories, len(p.CategoryIDs))
	}

	cats, err := cat.ListCategories(ctx, models.TypeElectrical)
	require.NoError(t, err)
	assert.Len(t, cats, len(fixtures.CategoryNames(fixtures.Electrical)))
}

func TestMigrate_RefusesNonEmptyCatalog(t *testing.T) {
	cat, _ := newCatalog(t)
	s := &SeedService{Repo: cat.Repo, Names: cat.Names}
	mustProduct(t, cat, "Hex Bolt", models.TypeFasteners, "1")

	_, err := s.Migrate(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySeeded)

	cats, err := cat.ListCategories(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, cats)
}
