package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	view, err := h.Svc.View(ctx, userID)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "add_cart_error", err)
	}
	var req transport.AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "add_cart_error", err)
	}

	item, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "add_cart_error", err)
	}

	l.Info("add_cart_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "quantity.cart")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "set_quantity_error", err)
	}
	itemID, err := paramID(c, "id")
	if err != nil {
		return fail(l, "set_quantity_error", err)
	}
	var req transport.SetQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "set_quantity_error", err)
	}

	item, err := h.Svc.SetQuantity(ctx, userID, itemID, req.Quantity)
	if err != nil {
		return fail(l, "set_quantity_error", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.cart")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "remove_cart_error", err)
	}
	itemID, err := paramID(c, "id")
	if err != nil {
		return fail(l, "remove_cart_error", err)
	}
	if err := h.Svc.RemoveItem(ctx, userID, itemID); err != nil {
		return fail(l, "remove_cart_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.cart")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "checkout_error", err)
	}
	order, err := h.Svc.Checkout(ctx, userID)
	if err != nil {
		return fail(l, "checkout_error", err)
	}

	l.Info("checkout_success", "order_id", order.ID, "total", order.Total.StringFixed(2))
	return c.JSON(http.StatusCreated, order)
}
