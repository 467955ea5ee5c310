package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionHeader = "X-Session-ID"
	CtxSessionKey = "session_id"
)

// Session resolves the opaque session identifier that keys the cart. A
// client without one gets a fresh UUID, echoed back so it can be replayed
// on the next request. Every usecase receives the id explicitly; nothing
// reads ambient session state past this point.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := c.Request().Header.Get(SessionHeader)
			if sid == "" {
				sid = uuid.NewString()
			}

			c.Set(CtxSessionKey, sid)
			c.Response().Header().Set(SessionHeader, sid)

			return next(c)
		}
	}
}

// SessionID reads the id the Session middleware stored.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(CtxSessionKey).(string)
	return sid
}
