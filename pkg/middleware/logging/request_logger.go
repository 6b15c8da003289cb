package loggingmw

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
	authmw "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/middleware/auth"
)

// RequestLogger puts a request scoped logger into the request context and
// writes one request_done line per request. Health probes log at debug.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With("method", req.Method, "route", c.Path())

			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			attrs := []any{
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", res.Size,
				"remote_ip", c.RealIP(),
			}
			if uid, ok := c.Get(authmw.CtxUserID).(string); ok {
				attrs = append(attrs, "user_id", uid)
			}

			switch {
			case res.Status >= 500:
				if err != nil {
					attrs = append(attrs, "error", err.Error())
				}
				l.Error("request_done", attrs...)
			case res.Status >= 400:
				l.Warn("request_done", attrs...)
			case strings.HasPrefix(req.URL.Path, "/health"):
				l.Debug("request_done", attrs...)
			default:
				l.Info("request_done", attrs...)
			}
			return nil
		}
	}
}
