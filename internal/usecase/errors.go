package usecase

import (
	"errors"
	"fmt"
)

// Machine-readable error codes surfaced to clients. Handlers map HTTPError
// to the HTTP layer; anything else becomes a 500 INTERNAL_ERROR.
const (
	CodeCartAlreadyExists  = "CART_ALREADY_EXISTS"
	CodeCartNotFound       = "CART_NOT_FOUND"
	CodeCartIsNotCreated   = "CART_IS_NOT_CREATED"
	CodeCartIsEmpty        = "CART_IS_EMPTY"
	CodeOrderCantBeCreated = "ORDER_CANT_BE_CREATED"
	CodeBundleConflict     = "BUNDLE_CONFLICT"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidSession     = "INVALID_SESSION"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidDate        = "INVALID_DATE"
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodeItemNotFound       = "ITEM_NOT_FOUND"
	CodeOrderNotFound      = "ORDER_NOT_FOUND"
	CodeHasChildRows       = "HAS_CHILD_ROWS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternal           = "INTERNAL_ERROR"
)

type HTTPError struct {
	Status int
	Code   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Code)
}

func NewHTTPError(status int, code string) error {
	return &HTTPError{Status: status, Code: code}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
