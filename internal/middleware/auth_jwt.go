package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/config"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const CtxUserIDKey = "user_id" // int64

// OptionalAuthJWT extracts the acting user from a bearer token when one is
// present and valid; carts and orders work anonymously, so a missing or
// broken token just leaves the request without a user.
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := parseBearer(c, cfg.JWTSecret); ok {
				c.Set(CtxUserIDKey, userID)
			}
			return next(c)
		}
	}
}

// RequireUser guards the few endpoints that only make sense authenticated.
// The error reaches the client through the server's error handler, in the
// same shape the handlers use.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserID(c); !ok {
				return usecase.NewHTTPError(http.StatusUnauthorized, usecase.CodeUnauthorized)
			}
			return next(c)
		}
	}
}

// UserID reads the user the auth middleware resolved, if any.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxUserIDKey).(int64)
	return id, ok
}

func parseBearer(c echo.Context, secret string) (int64, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return 0, false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, false
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return 0, false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	userID, err := parseSubject(claims["sub"])
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func parseSubject(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}
