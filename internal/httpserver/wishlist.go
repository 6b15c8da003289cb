package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.list")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "wishlist_list_error", err)
	}
	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		return fail(l, "wishlist_list_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "meta": map[string]any{"total": len(items)}})
}

func (h *WishlistHTTP) Member(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.member")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "wishlist_member_error", err)
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return fail(l, "wishlist_member_error", err)
	}
	ok, itemID, err := h.Svc.IsMember(ctx, userID, productID)
	if err != nil {
		return fail(l, "wishlist_member_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"in_wishlist": ok, "item_id": itemID})
}

func (h *WishlistHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "wishlist_toggle_error", err)
	}
	var req transport.ToggleWishlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "wishlist_toggle_error", err)
	}
	member, err := h.Svc.Toggle(ctx, userID, req.ProductID, nil)
	if err != nil {
		return fail(l, "wishlist_toggle_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"in_wishlist": member})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "wishlist_remove_error", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "wishlist_remove_error", err)
	}
	if err := h.Svc.Remove(ctx, userID, id); err != nil {
		return fail(l, "wishlist_remove_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
