package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSession_IssuesIDWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := Session()(func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusOK)
	})

	err := h(c)

	assert.NoError(t, err)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(SessionHeader))
}

func TestSession_EchoesExistingID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "sess-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := Session()(func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusOK)
	})

	err := h(c)

	assert.NoError(t, err)
	assert.Equal(t, "sess-42", seen)
	assert.Equal(t, "sess-42", rec.Header().Get(SessionHeader))
}
