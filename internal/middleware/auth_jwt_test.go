package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/config"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func runAuth(cfg config.Config, authz string) (int64, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var id int64
	var ok bool
	h := OptionalAuthJWT(cfg)(func(c echo.Context) error {
		id, ok = UserID(c)
		return nil
	})
	_ = h(c)
	return id, ok
}

func TestOptionalAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "secret"}
	token := signToken(t, "secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	id, ok := runAuth(cfg, "Bearer "+token)

	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestOptionalAuthJWT_NumericSubject(t *testing.T) {
	cfg := config.Config{JWTSecret: "secret"}
	token := signToken(t, "secret", jwt.MapClaims{
		"sub": 42,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	id, ok := runAuth(cfg, "Bearer "+token)

	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestOptionalAuthJWT_BrokenTokenIsAnonymous(t *testing.T) {
	cfg := config.Config{JWTSecret: "secret"}

	_, ok := runAuth(cfg, "Bearer not-a-token")
	assert.False(t, ok)

	_, ok = runAuth(cfg, "")
	assert.False(t, ok)
}

func TestOptionalAuthJWT_WrongSecretIsAnonymous(t *testing.T) {
	cfg := config.Config{JWTSecret: "secret"}
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, ok := runAuth(cfg, "Bearer "+token)

	assert.False(t, ok)
}

func TestRequireUser_BlocksAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireUser()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := h(c)

	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, he.Status)
		assert.Equal(t, usecase.CodeUnauthorized, he.Code)
	}
}

func TestRequireUser_PassesAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserIDKey, int64(42))

	h := RequireUser()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := h(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
