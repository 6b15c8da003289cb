package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/events"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/filter"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/search"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/util"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Names  *CategoryNames
	Events events.Publisher
	Index  search.Index

	deletes singleflight.Group
}

// Query is one page request of the product listing.
type Query struct {
	Type        string
	CategoryIDs []uint
	Search      string
	SortKey     string
	Desc        bool
	PageSize    int
	Cursor      string
}

// Page holds at most PageSize products. The text search runs after the page
// is cut, so Items can be shorter than PageSize while HasMore is still true.
type Page struct {
	Items      []models.Product `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
	HasMore    bool             `json:"has_more"`
}

type cursor struct {
	Key   string `json:"k"`
	Desc  bool   `json:"d"`
	Value string `json:"v"`
	ID    uint   `json:"id"`
}

func normalizeType(typ string) (string, error) {
	switch typ {
	case "", filter.AllTypes:
		return "", nil
	}
	if !models.ValidType(typ) {
		return "", fmt.Errorf("unknown category type %q: %w", typ, ErrValidation)
	}
	return typ, nil
}

func (s *CatalogService) resolve(ctx context.Context, products []models.Product) error {
	if s.Names == nil {
		return nil
	}
	return storeErr("resolve categories", s.Names.Resolve(ctx, products))
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.ListByType(ctx, "")
}

func (s *CatalogService) ListByType(ctx context.Context, typ string) ([]models.Product, error) {
	typ, err := normalizeType(typ)
	if err != nil {
		return nil, err
	}

	products, err := s.Repo.ListAllProducts(ctx, typ)
	if err != nil {
		return nil, storeErr("list products", err)
	}
	if err := s.resolve(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}
	one := []models.Product{*p}
	if err := s.resolve(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *CatalogService) ListFiltered(ctx context.Context, q Query) (*Page, error) {
	typ, err := normalizeType(q.Type)
	if err != nil {
		return nil, err
	}

	key := q.SortKey
	switch key {
	case "":
		key = repo.SortCreatedAt
	case repo.SortCreatedAt, repo.SortName, repo.SortPrice:
	default:
		return nil, fmt.Errorf("unknown sort key %q: %w", key, ErrValidation)
	}

	size := util.ClampSize(q.PageSize)
	rq := repo.ProductQuery{
		Type:        typ,
		CategoryIDs: q.CategoryIDs,
		SortKey:     key,
		Desc:        q.Desc,
		Limit:       size + 1,
	}
	if q.Cursor != "" {
		after, err := decodeCursor(q.Cursor, key, q.Desc)
		if err != nil {
			return nil, err
		}
		rq.After = after
	}

	rows, err := s.Repo.ListProducts(ctx, rq)
	if err != nil {
		return nil, storeErr("list products", err)
	}

	page := &Page{Items: []models.Product{}}
	if len(rows) > size {
		page.HasMore = true
		rows = rows[:size]
	}
	if len(rows) == 0 {
		return page, nil
	}
	if page.HasMore {
		page.NextCursor = encodeCursor(key, q.Desc, &rows[len(rows)-1])
	}

	if err := s.resolve(ctx, rows); err != nil {
		return nil, err
	}
	m := filter.NewMatcher(filter.State{SearchTerm: q.Search})
	for i := range rows {
		if m.MatchText(&rows[i]) {
			page.Items = append(page.Items, rows[i])
		}
	}
	return page, nil
}

func encodeCursor(key string, desc bool, last *models.Product) string {
	c := cursor{Key: key, Desc: desc, ID: last.ID}
	switch key {
	case repo.SortName:
		c.Value = last.Name
	case repo.SortPrice:
		c.Value = last.Price.Decimal.String()
	default:
		c.Value = last.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeCursor(raw, key string, desc bool) (*repo.Keyset, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", ErrValidation)
	}
	var c cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", ErrValidation)
	}
	if c.Key != key || c.Desc != desc {
		return nil, fmt.Errorf("cursor belongs to another ordering: %w", ErrValidation)
	}

	ks := &repo.Keyset{ID: c.ID}
	switch key {
	case repo.SortName:
		ks.Value = c.Value
	case repo.SortPrice:
		d, err := decimal.NewFromString(c.Value)
		if err != nil {
			return nil, fmt.Errorf("malformed cursor: %w", ErrValidation)
		}
		ks.Value = d
	default:
		t, err := time.Parse(time.RFC3339Nano, c.Value)
		if err != nil {
			return nil, fmt.Errorf("malformed cursor: %w", ErrValidation)
		}
		ks.Value = t
	}
	return ks, nil
}

// Browse loads one type and applies the in-memory filter model to it.
func (s *CatalogService) Browse(ctx context.Context, st filter.State) ([]models.Product, error) {
	products, err := s.ListByType(ctx, st.CategoryType)
	if err != nil {
		return nil, err
	}
	return filter.Apply(products, st), nil
}

// Search uses the search index when one is configured and falls back to a
// scan of the catalog when it is missing or failing.
func (s *CatalogService) Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")
	size = util.ClampSize(size)
	if from < 0 {
		from = 0
	}

	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, q, from, size)
		if err == nil {
			return total, items, nil
		}
		l.Warn("search_index_failed", "reason", "falling back to catalog scan", "error", err)
	}

	products, err := s.ListAll(ctx)
	if err != nil {
		return 0, nil, err
	}
	st := filter.Default()
	st.SearchTerm = q
	hits := filter.Apply(products, st)

	total := int64(len(hits))
	if from >= len(hits) {
		return total, []models.Product{}, nil
	}
	end := min(from+size, len(hits))
	return total, hits[from:end], nil
}

func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, fmt.Errorf("search index is not configured: %w", ErrValidation)
	}
	products, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Index.IndexProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("reindex: %w: %w", ErrStore, err)
	}
	return len(products), nil
}

func (s *CatalogService) categoryIDs(ctx context.Context, typ string, ids []uint, names []string) ([]uint, error) {
	out := append([]uint{}, ids...)
	if len(names) == 0 {
		return out, nil
	}

	trimmed := make([]string, len(names))
	for i, n := range names {
		trimmed[i] = strings.TrimSpace(n)
	}
	found, err := s.Repo.CategoriesByNames(ctx, typ, trimmed)
	if err != nil {
		return nil, storeErr("resolve category names", err)
	}
	for _, n := range trimmed {
		id, ok := found[n]
		if !ok {
			return nil, fmt.Errorf("unknown %s category %q: %w", typ, n, ErrValidation)
		}
		out = append(out, id)
	}
	return out, nil
}

func validMoney(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return fmt.Errorf("%s cannot be negative: %w", field, ErrValidation)
	}
	return nil
}

func nullMoney(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d.Round(2))
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if !models.ValidType(req.CategoryType) {
		return nil, fmt.Errorf("unknown category type %q: %w", req.CategoryType, ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	}
	if err := validMoney("price", req.Price); err != nil {
		return nil, err
	}
	if err := validMoney("discount price", req.DiscountPrice); err != nil {
		return nil, err
	}

	ids, err := s.categoryIDs(ctx, req.CategoryType, req.CategoryIDs, req.CategoryNames)
	if err != nil {
		return nil, err
	}

	prod := &models.Product{
		Name:          name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		CategoryType:  req.CategoryType,
		IsNew:         req.IsNew,
		Featured:      req.Featured,
		Price:         nullMoney(req.Price),
		DiscountPrice: nullMoney(req.DiscountPrice),
		Stock:         req.Stock,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
	}
	if _, err := s.Repo.CreateProduct(ctx, prod, ids); err != nil {
		l.Error("create_product_failed", "error", err)
		return nil, storeErr("create product", err)
	}

	created, err := s.GetByID(ctx, prod.ID)
	if err != nil {
		return nil, err
	}
	s.indexOne(ctx, created)
	publish(ctx, s.Events, events.TopicProducts, strconv.FormatUint(uint64(created.ID), 10), map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "product_id", id)

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		updates["name"] = name
	}
	if req.CategoryType != nil {
		if !models.ValidType(*req.CategoryType) {
			return nil, fmt.Errorf("unknown category type %q: %w", *req.CategoryType, ErrValidation)
		}
		updates["category_type"] = *req.CategoryType
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
		}
		updates["stock"] = *req.Stock
	}
	if err := validMoney("price", req.Price); err != nil {
		return nil, err
	}
	if err := validMoney("discount price", req.DiscountPrice); err != nil {
		return nil, err
	}

	switch {
	case req.ClearPrice:
		updates["price"] = nil
	case req.Price != nil:
		updates["price"] = req.Price.Round(2)
	}
	switch {
	case req.ClearDiscount:
		updates["discount_price"] = nil
	case req.DiscountPrice != nil:
		updates["discount_price"] = req.DiscountPrice.Round(2)
	}

	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setString("description", req.Description)
	setString("image_url", req.ImageURL)
	setString("weight", req.Weight)
	setString("dimensions", req.Dimensions)
	if req.IsNew != nil {
		updates["is_new"] = *req.IsNew
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	var ids []uint
	if req.CategoryIDs != nil || req.CategoryNames != nil {
		current, err := s.Repo.GetProduct(ctx, id)
		if err != nil {
			return nil, storeErr("get product", err)
		}
		typ := current.CategoryType
		if req.CategoryType != nil {
			typ = *req.CategoryType
		}

		var given []uint
		var names []string
		if req.CategoryIDs != nil {
			given = *req.CategoryIDs
		}
		if req.CategoryNames != nil {
			names = *req.CategoryNames
		}
		if ids, err = s.categoryIDs(ctx, typ, given, names); err != nil {
			return nil, err
		}
	}

	if _, err := s.Repo.UpdateProduct(ctx, id, updates, ids); err != nil {
		l.Warn("update_product_failed", "error", err)
		return nil, storeErr("update product", err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexOne(ctx, updated)
	publish(ctx, s.Events, events.TopicProducts, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      "product_updated",
		"productID": id,
		"name":      updated.Name,
	})
	return updated, nil
}

// Delete removes the product and its category links. Concurrent deletes of
// the same id share one store call and one result.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	key := strconv.FormatUint(uint64(id), 10)
	_, err, _ := s.deletes.Do(key, func() (any, error) {
		if err := s.Repo.DeleteProduct(ctx, id); err != nil {
			return nil, err
		}
		if s.Index != nil {
			if err := s.Index.DeleteProduct(ctx, id); err != nil {
				logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
			}
		}
		publish(ctx, s.Events, events.TopicProducts, key, map[string]any{
			"type":      "product_deleted",
			"productID": id,
		})
		return nil, nil
	})
	return storeErr("delete product", err)
}

func (s *CatalogService) indexOne(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProducts(ctx, []models.Product{*p}); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
	}
}

type ProductStats struct {
	Total      int            `json:"total"`
	ByType     map[string]int `json:"by_type"`
	New        int            `json:"new"`
	Featured   int            `json:"featured"`
	OutOfStock int            `json:"out_of_stock"`
}

type InventoryValue struct {
	Total  decimal.Decimal            `json:"total"`
	ByType map[string]decimal.Decimal `json:"by_type"`
}

func Stats(products []models.Product) ProductStats {
	st := ProductStats{ByType: map[string]int{
		models.TypeFasteners:  0,
		models.TypeElectrical: 0,
	}}
	for i := range products {
		p := &products[i]
		st.Total++
		st.ByType[p.CategoryType]++
		if p.IsNew {
			st.New++
		}
		if p.Featured {
			st.Featured++
		}
		if p.Stock <= 0 {
			st.OutOfStock++
		}
	}
	return st
}

// Inventory sums list price times stock. A product without a price adds nothing.
func Inventory(products []models.Product) InventoryValue {
	v := InventoryValue{Total: decimal.Zero, ByType: map[string]decimal.Decimal{
		models.TypeFasteners:  decimal.Zero,
		models.TypeElectrical: decimal.Zero,
	}}
	for i := range products {
		p := &products[i]
		if !p.Price.Valid || p.Stock <= 0 {
			continue
		}
		line := p.Price.Decimal.Mul(decimal.NewFromInt(int64(p.Stock)))
		v.Total = v.Total.Add(line)
		v.ByType[p.CategoryType] = v.ByType[p.CategoryType].Add(line)
	}
	return v
}

func (s *CatalogService) ProductStats(ctx context.Context) (ProductStats, error) {
	products, err := s.Repo.ListAllProducts(ctx, "")
	if err != nil {
		return ProductStats{}, storeErr("product stats", err)
	}
	return Stats(products), nil
}

func (s *CatalogService) InventoryValue(ctx context.Context) (InventoryValue, error) {
	products, err := s.Repo.ListAllProducts(ctx, "")
	if err != nil {
		return InventoryValue{}, storeErr("inventory value", err)
	}
	return Inventory(products), nil
}

func (s *CatalogService) ListCategories(ctx context.Context, typ string) ([]models.Category, error) {
	typ, err := normalizeType(typ)
	if err != nil {
		return nil, err
	}
	cats, err := s.Repo.ListCategories(ctx, typ)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	return cats, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, typ string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}
	if !models.ValidType(typ) {
		return nil, fmt.Errorf("unknown category type %q: %w", typ, ErrValidation)
	}

	_, err := s.Repo.FindCategory(ctx, typ, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("category %q already exists: %w", name, ErrConflict)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeErr("find category", err)
	}

	cat := &models.Category{Name: name, Type: typ}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, storeErr("create category", err)
	}
	s.Names.Invalidate(ctx)
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	if other, err := s.Repo.FindCategory(ctx, cat.Type, name); err == nil && other.ID != id {
		return nil, fmt.Errorf("category %q already exists: %w", name, ErrConflict)
	}

	cat, err = s.Repo.RenameCategory(ctx, id, name)
	if err != nil {
		return nil, storeErr("rename category", err)
	}
	s.Names.Invalidate(ctx)
	s.reindexCategory(ctx, id, nil)
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	var linked []uint
	if s.Index != nil {
		ids, err := s.Repo.ProductIDsInCategory(ctx, id)
		if err != nil {
			return storeErr("list category products", err)
		}
		linked = ids
	}
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return storeErr("delete category", err)
	}
	s.Names.Invalidate(ctx)
	s.reindexCategory(ctx, id, linked)
	return nil
}

// reindexCategory pushes the products of a renamed or deleted category to the
// search index again. ids are looked up when nil.
func (s *CatalogService) reindexCategory(ctx context.Context, categoryID uint, ids []uint) {
	if s.Index == nil {
		return
	}
	l := logging.FromContext(ctx).With("category_id", categoryID)

	if ids == nil {
		var err error
		if ids, err = s.Repo.ProductIDsInCategory(ctx, categoryID); err != nil {
			l.Warn("search_index_failed", "error", err)
			return
		}
	}
	if len(ids) == 0 {
		return
	}

	byID, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		l.Warn("search_index_failed", "error", err)
		return
	}
	products := make([]models.Product, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	if err := s.resolve(ctx, products); err != nil {
		l.Warn("search_index_failed", "error", err)
		return
	}
	if err := s.Index.IndexProducts(ctx, products); err != nil {
		l.Warn("search_index_failed", "products", len(products), "error", err)
	}
}
