package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type AdminHTTP struct {
	Catalog *service.CatalogService
	Orders  *service.OrderService
	Seed    *service.SeedService
}

func (h *AdminHTTP) Migrate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.migrate")

	res, err := h.Seed.Migrate(ctx)
	if err != nil {
		return fail(l, "migrate_failed", err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	products, err := h.Catalog.ProductStats(ctx)
	if err != nil {
		return fail(l, "stats_failed", err)
	}
	inventory, err := h.Catalog.InventoryValue(ctx)
	if err != nil {
		return fail(l, "stats_failed", err)
	}
	orders, err := h.Orders.CountByStatus(ctx)
	if err != nil {
		return fail(l, "stats_failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products":  products,
		"inventory": inventory,
		"orders":    orders,
	})
}
