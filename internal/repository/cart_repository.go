package repository

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
)

type CartRepository interface {
	// Create fails with ErrDuplicate when the session already has a cart.
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)
	FindBySessionID(ctx context.Context, sessionID string) (model.Cart, error)
	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	UpdateUser(ctx context.Context, cartID int64, userID *int64) error
	// Delete removes the cart together with its details and items.
	Delete(ctx context.Context, cartID int64) error
}
