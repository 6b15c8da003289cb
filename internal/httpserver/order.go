package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/util"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func pageParams(c echo.Context) (int, int) {
	page := max(util.ParseIntDefault(c.QueryParam("page"), 1), 1)
	size := util.ClampSize(util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize))
	return page, size
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	page, size := pageParams(c)
	total, items, err := h.Svc.ListOrders(ctx, userID, page, size)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "meta": pageMeta(page, size, total)})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	order, err := h.Svc.GetOrder(ctx, userID, id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "cancel_order_error", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "cancel_order_error", err)
	}
	order, err := h.Svc.CancelOrder(ctx, userID, id)
	if err != nil {
		return fail(l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", id)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.admin_list")

	page, size := pageParams(c)
	total, items, err := h.Svc.ListAllOrders(ctx, c.QueryParam("status"), page, size)
	if err != nil {
		return fail(l, "list_all_orders_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "meta": pageMeta(page, size, total)})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_order_status_error", err)
	}
	var req transport.UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "update_order_status_error", err)
	}
	order, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_order_status_error", err)
	}

	l.Info("update_order_status_success", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
