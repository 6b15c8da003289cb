package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/fixtures"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type SeedService struct {
	Repo  *repo.GormRepo
	Names *CategoryNames
}

type SeedResult struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

// Migrate loads the starter catalog into an empty store. It refuses to run
// when any product exists, and a failed run leaves nothing behind.
func (s *SeedService) Migrate(ctx context.Context) (*SeedResult, error) {
	l := logging.FromContext(ctx).With("svc", "seed.migrate")

	if n, err := s.Repo.CountProducts(ctx); err != nil {
		return nil, storeErr("count products", err)
	} else if n > 0 {
		return nil, fmt.Errorf("%d products present: %w", n, ErrAlreadySeeded)
	}

	res := &SeedResult{}
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		// a concurrent run may have committed since the first check
		n, err := tx.CountProducts(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%d products present: %w", n, ErrAlreadySeeded)
		}

		for _, set := range []struct {
			typ      string
			products []fixtures.Product
		}{
			{models.TypeFasteners, fixtures.Fasteners},
			{models.TypeElectrical, fixtures.Electrical},
		} {
			ids := make(map[string]uint)
			for _, name := range fixtures.CategoryNames(set.products) {
				cat, err := tx.UpsertCategory(ctx, set.typ, name)
				if err != nil {
					return fmt.Errorf("upsert category %s/%s: %w", set.typ, name, err)
				}
				ids[name] = cat.ID
				res.Categories++
			}

			for _, fx := range set.products {
				prod, err := fixtureProduct(set.typ, fx)
				if err != nil {
					return err
				}
				links := make([]uint, 0, len(fx.Categories))
				for _, name := range fx.Categories {
					links = append(links, ids[name])
				}
				if _, err := tx.CreateProduct(ctx, prod, links); err != nil {
					return fmt.Errorf("insert %q: %w", fx.Name, err)
				}
				res.Products++
			}
		}
		return nil
	})
	if err != nil {
		l.Error("migrate_failed", "error", err)
		return nil, storeErr("migrate", err)
	}

	s.Names.Invalidate(ctx)
	l.Info("migrate_done", "categories", res.Categories, "products", res.Products)
	return res, nil
}

func fixtureProduct(typ string, fx fixtures.Product) (*models.Product, error) {
	prod := &models.Product{
		Name:         fx.Name,
		Description:  fx.Description,
		ImageURL:     fx.ImageURL,
		CategoryType: typ,
		IsNew:        fx.IsNew,
		Featured:     fx.Featured,
		Stock:        fx.Stock,
		Weight:       fx.Weight,
		Dimensions:   fx.Dimensions,
	}
	if fx.Price != "" {
		price, err := decimal.NewFromString(fx.Price)
		if err != nil {
			return nil, fmt.Errorf("fixture %q price: %w", fx.Name, err)
		}
		prod.Price = decimal.NewNullDecimal(price)
	}
	return prod, nil
}
