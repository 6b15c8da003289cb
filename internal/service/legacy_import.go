package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/legacy"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

// ImportService copies the legacy catalog into the store. Category references
// are normalized here, once, and stored as ids from then on.
type ImportService struct {
	Repo   *repo.GormRepo
	Names  *CategoryNames
	Source legacy.Source
}

type ImportResult struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Skipped    int `json:"skipped"`
	Unresolved int `json:"unresolved"`
}

// Import is idempotent: categories are upserted by (type, name) and a product
// whose (type, name) already exists is skipped. A reference that matches no
// legacy category is upserted under its raw text, so no link is lost.
func (s *ImportService) Import(ctx context.Context) (*ImportResult, error) {
	l := logging.FromContext(ctx).With("svc", "legacy.import")

	cats, err := s.Source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("read legacy categories: %w", err)
	}
	products, err := s.Source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("read legacy products: %w", err)
	}

	refs := legacy.NewRefIndex(cats)
	res := &ImportResult{}
	ids := make(map[string]uint, len(cats))

	err = s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		for _, c := range cats {
			name := strings.TrimSpace(c.Name)
			if name == "" || !models.ValidType(c.Type) {
				l.Warn("legacy_category_skipped", "id", c.ID, "name", c.Name, "type", c.Type)
				continue
			}
			stored, err := tx.UpsertCategory(ctx, c.Type, name)
			if err != nil {
				return fmt.Errorf("upsert category %q: %w", name, err)
			}
			ids[c.ID] = stored.ID
			res.Categories++
		}

		for _, p := range products {
			name := strings.TrimSpace(p.Name)
			if name == "" || !models.ValidType(p.CategoryType) {
				l.Warn("legacy_product_skipped", "id", p.ID, "reason", "missing name or unknown type")
				res.Skipped++
				continue
			}

			_, err := tx.FindProductByTypeName(ctx, p.CategoryType, name)
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			var links []uint
			seen := make(map[uint]bool, len(p.Categories))
			for _, ref := range p.Categories {
				id, ok := uint(0), false
				if c, found := refs.Resolve(p.CategoryType, ref); found {
					id, ok = ids[c.ID]
				}
				if !ok {
					// Keep the raw reference as a category of its own.
					raw := strings.TrimSpace(ref)
					if raw == "" {
						continue
					}
					l.Warn("legacy_category_unresolved", "product", p.ID, "ref", ref)
					stored, err := tx.UpsertCategory(ctx, p.CategoryType, raw)
					if err != nil {
						return fmt.Errorf("upsert category %q: %w", raw, err)
					}
					id = stored.ID
					res.Unresolved++
				}
				if !seen[id] {
					seen[id] = true
					links = append(links, id)
				}
			}

			if _, err := tx.CreateProduct(ctx, legacyProduct(name, p), links); err != nil {
				return fmt.Errorf("insert %q: %w", name, err)
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("legacy import", err)
	}

	s.Names.Invalidate(ctx)
	l.Info("legacy_import_done", "categories", res.Categories, "products", res.Products,
		"skipped", res.Skipped, "unresolved", res.Unresolved)
	return res, nil
}

func legacyProduct(name string, p legacy.Product) *models.Product {
	prod := &models.Product{
		Name:         name,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		CategoryType: p.CategoryType,
		IsNew:        p.IsNew,
		Featured:     p.Featured,
		Stock:        max(p.Stock, 0),
		Weight:       p.Weight,
		Dimensions:   p.Dimensions,
	}
	if p.Price != nil {
		prod.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*p.Price).Round(2))
	}
	if p.DiscountPrice != nil {
		prod.DiscountPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*p.DiscountPrice).Round(2))
	}
	return prod
}
