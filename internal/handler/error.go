package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps usecase errors onto the wire: domain errors keep their
// status and code, everything else collapses to a 500 without leaking
// internals.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Code})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: usecase.CodeInternal})
}

// HTTPErrorHandler renders errors that escape handlers and middleware in
// the same wire shape writeError uses. Echo's own errors, routing 404s
// included, keep their status.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var ehe *echo.HTTPError
	if errors.As(err, &ehe) {
		_ = c.JSON(ehe.Code, ErrorResponse{Error: fmt.Sprintf("%v", ehe.Message)})
		return
	}
	_ = writeError(c, err)
}
