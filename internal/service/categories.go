package service

import (
	"context"
	"strconv"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/cache"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

const namesKey = "category_names"

type Notifier interface {
	Notify(ctx context.Context, payload string) error
}

// CategoryNames resolves category ids to display names through a TTL cache.
type CategoryNames struct {
	Repo     *repo.GormRepo
	Cache    *cache.TTL[map[uint]string]
	Notifier Notifier
}

func (n *CategoryNames) names(ctx context.Context) (map[uint]string, error) {
	if n.Cache != nil {
		if m, ok := n.Cache.Get(namesKey); ok {
			return m, nil
		}
	}

	cats, err := n.Repo.ListCategories(ctx, "")
	if err != nil {
		return nil, err
	}
	m := make(map[uint]string, len(cats))
	for _, c := range cats {
		m[c.ID] = c.Name
	}
	if n.Cache != nil {
		n.Cache.Set(namesKey, m)
	}
	return m, nil
}

// Resolve loads the category links of products and fills CategoryIDs and
// Categories. A link whose category is unknown shows up as the raw id.
func (n *CategoryNames) Resolve(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uint, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	links, err := n.Repo.CategoryLinks(ctx, ids)
	if err != nil {
		return err
	}
	names, err := n.names(ctx)
	if err != nil {
		return err
	}

	for i := range products {
		p := &products[i]
		p.CategoryIDs = links[p.ID]
		if p.CategoryIDs == nil {
			p.CategoryIDs = []uint{}
		}
		p.Categories = resolveNames(p.CategoryIDs, names)
	}
	return nil
}

func resolveNames(ids []uint, names map[uint]string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := names[id]; ok {
			out[i] = name
			continue
		}
		out[i] = strconv.FormatUint(uint64(id), 10)
	}
	return out
}

// Forget drops the local cache only. Used by the change listener.
func (n *CategoryNames) Forget() {
	if n != nil && n.Cache != nil {
		n.Cache.Clear()
	}
}

// Invalidate drops the local cache and tells the other instances to do the same.
func (n *CategoryNames) Invalidate(ctx context.Context) {
	n.Forget()
	if n == nil || n.Notifier == nil {
		return
	}
	if err := n.Notifier.Notify(ctx, "categories"); err != nil {
		logging.FromContext(ctx).Warn("category_notify_failed", "error", err)
	}
}
