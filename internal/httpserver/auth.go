package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/service"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/transport"
	jwthelp "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/jwt"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "register_error", err)
	}
	user, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "register_error", err)
	}

	l.Info("register_successful", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{"id": user.ID, "email": user.Email})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "login_error", err)
	}
	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	jwthelp.SetPair(c, pair)
	l.Info("login_successful")
	return c.JSON(http.StatusOK, echo.Map{"is_admin": pair.IsAdmin})
}

func (h *AuthHTTP) FirebaseLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_firebase")

	var req transport.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "firebase_login_error", err)
	}
	pair, err := h.Svc.FirebaseSignIn(ctx, req.IDToken)
	if err != nil {
		return fail(l, "firebase_login_failed", err)
	}

	jwthelp.SetPair(c, pair)
	l.Info("firebase_login_successful")
	return c.JSON(http.StatusOK, echo.Map{"is_admin": pair.IsAdmin})
}

// Refresh rotates the cookie pair. It also answers pkg/authclient, so the
// new pair is returned in the body as well.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	cookie, err := c.Cookie(jwthelp.RefreshCookie)
	if err != nil || cookie.Value == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "refresh token missing")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}
	pair, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		jwthelp.ClearPair(c)
		return fail(l, "refresh_failed", err)
	}

	jwthelp.SetPair(c, pair)
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	if cookie, err := c.Cookie(jwthelp.RefreshCookie); err == nil {
		if err := h.Svc.LogOut(ctx, cookie.Value); err != nil {
			jwthelp.ClearPair(c)
			return fail(l, "logout_failed", err)
		}
	}

	jwthelp.ClearPair(c)
	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
