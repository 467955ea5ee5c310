package repository

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
)

// Partial update: nil fields are left untouched.
type CartDetailsPatch struct {
	DeliveryLat  *float64
	DeliveryLng  *float64
	DeliveryType *string
	MetaData     *string
}

type CartDetailsRepository interface {
	Create(ctx context.Context, details model.CartDetails) (model.CartDetails, error)
	FindByID(ctx context.Context, detailsID int64) (model.CartDetails, error)
	FindByCartID(ctx context.Context, cartID int64) (model.CartDetails, error)
	Update(ctx context.Context, detailsID int64, patch CartDetailsPatch) error
}
