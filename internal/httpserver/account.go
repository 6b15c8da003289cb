package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "get_profile_error", err)
	}
	p, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		return fail(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AccountHTTP) PutProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.put")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "put_profile_error", err)
	}
	var req transport.ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "put_profile_error", err)
	}
	p, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return fail(l, "put_profile_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AccountHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "list_addresses_error", err)
	}
	items, err := h.Svc.Addresses(ctx, userID)
	if err != nil {
		return fail(l, "list_addresses_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "meta": map[string]any{"total": len(items)}})
}

func (h *AccountHTTP) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.add")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "add_address_error", err)
	}
	var req transport.AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "add_address_error", err)
	}
	a, err := h.Svc.AddAddress(ctx, userID, req)
	if err != nil {
		return fail(l, "add_address_error", err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AccountHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.update")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "update_address_error", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "update_address_error", err)
	}
	var req transport.AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "update_address_error", err)
	}
	a, err := h.Svc.UpdateAddress(ctx, userID, id, req)
	if err != nil {
		return fail(l, "update_address_error", err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHTTP) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.delete")

	userID, err := currentUser(c)
	if err != nil {
		return fail(l, "delete_address_error", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return fail(l, "delete_address_error", err)
	}
	if err := h.Svc.DeleteAddress(ctx, userID, id); err != nil {
		return fail(l, "delete_address_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.submit")

	var req transport.ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "contact_submit_error", err)
	}
	contact, err := h.Svc.Submit(ctx, req)
	if err != nil {
		return fail(l, "contact_submit_error", err)
	}

	l.Info("contact_submit_success", "contact_id", contact.ID)
	return c.JSON(http.StatusCreated, echo.Map{"id": contact.ID})
}

func (h *ContactHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.list")

	page, size := pageParams(c)
	total, items, err := h.Svc.ListContacts(ctx, page, size)
	if err != nil {
		return fail(l, "contact_list_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "meta": pageMeta(page, size, total)})
}
