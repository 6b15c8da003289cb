package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/export"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/filter"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/util"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	categoryIDs, err := util.ParseUintList(c.QueryParam("category_ids"))
	if err != nil {
		l.Warn("get_products_failed", "status", 400, "reason", "bad category_ids", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category_ids")
	}
	q := service.Query{
		Type:        c.QueryParam("type"),
		CategoryIDs: categoryIDs,
		Search:      c.QueryParam("q"),
		SortKey:     c.QueryParam("sort"),
		Desc:        strings.EqualFold(c.QueryParam("dir"), "desc"),
		PageSize:    util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize),
		Cursor:      c.QueryParam("cursor"),
	}

	page, err := h.Svc.ListFiltered(ctx, q)
	if err != nil {
		return fail(l, "get_products_failed", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": page.Items,
		"meta": map[string]any{
			"size":        util.ClampSize(q.PageSize),
			"has_more":    page.HasMore,
			"next_cursor": page.NextCursor,
		},
	})
}

func (h *CatalogHTTP) GetAllProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_all")

	items, err := h.Svc.ListByType(ctx, c.QueryParam("type"))
	if err != nil {
		return fail(l, "get_all_products_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"total": len(items)},
	})
}

func (h *CatalogHTTP) BrowseProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.browse")

	sortBy, ok := filter.ParseSort(c.QueryParam("sort"))
	if !ok {
		l.Warn("browse_failed", "status", 400, "reason", "unknown sort", "sort", c.QueryParam("sort"))
		return echo.NewHTTPError(http.StatusBadRequest, "unknown sort")
	}
	categoryIDs, err := util.ParseUintList(c.QueryParam("category_ids"))
	if err != nil {
		l.Warn("browse_failed", "status", 400, "reason", "bad category_ids", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category_ids")
	}
	st := filter.State{
		SearchTerm:   c.QueryParam("q"),
		CategoryType: c.QueryParam("type"),
		CategoryIDs:  categoryIDs,
		SortBy:       sortBy,
	}
	if st.CategoryType == "" {
		st.CategoryType = filter.AllTypes
	}

	items, err := h.Svc.Browse(ctx, st)
	if err != nil {
		return fail(l, "browse_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"total": len(items), "sort": sortBy},
	})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	page := max(util.ParseIntDefault(c.QueryParam("page"), 1), 1)
	size := util.ClampSize(util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize))

	total, items, err := h.Svc.Search(ctx, q, (page-1)*size, size)
	if err != nil {
		return fail(l, "search_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": pageMeta(page, size, total),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	product, err := h.Svc.GetByID(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.ListCategories(ctx, c.QueryParam("type"))
	if err != nil {
		return fail(l, "get_categories_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"total": len(items)},
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	var req transport.CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "product_create_error", err)
	}

	created, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "product_create_error", err)
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch_product")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "product_patch_error", err)
	}
	var req transport.PatchProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "product_patch_error", err)
	}

	prod, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "product_patch_error", err)
	}

	l.Info("patch_product_success", "product_id", id)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_product")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "product_delete_error", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "product_delete_error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_category")

	var req transport.CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "category_create_error", err)
	}
	cat, err := h.Svc.CreateCategory(ctx, req.Name, req.Type)
	if err != nil {
		return fail(l, "category_create_error", err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) RenameCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rename_category")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "category_rename_error", err)
	}
	var req transport.RenameCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "category_rename_error", err)
	}
	cat, err := h.Svc.UpdateCategory(ctx, id, req.Name)
	if err != nil {
		return fail(l, "category_rename_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_category")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "category_delete_error", err)
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return fail(l, "category_delete_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ExportProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "export_products")

	items, err := h.Svc.ListAll(ctx)
	if err != nil {
		return fail(l, "export_failed", err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, export.ContentType)
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	res.WriteHeader(http.StatusOK)
	if err := export.WriteProducts(res, items); err != nil {
		l.Error("export_failed", "status", 500, "reason", "cannot write xlsx", "error", err)
		return nil
	}

	l.Info("export_success", "products", len(items))
	return nil
}

func (h *CatalogHTTP) Reindex(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search_reindex")

	n, err := h.Svc.Reindex(ctx)
	if err != nil {
		return fail(l, "reindex_failed", err)
	}
	l.Info("reindex_success", "products", n)
	return c.JSON(http.StatusOK, echo.Map{"indexed": n})
}
