package repository

import (
	"context"
	"errors"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert,
	// e.g. a second cart for the same session.
	ErrDuplicate = errors.New("duplicate")
	// ErrHasChildren is returned when dependent rows block a delete.
	ErrHasChildren = errors.New("has dependent rows")
)

// Read-only: the engine never creates or mutates users.
type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
}
