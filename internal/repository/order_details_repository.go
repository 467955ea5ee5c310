package repository

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
)

type OrderDetailsPatch struct {
	MetaData *string
	IsPaid   *bool
}

type OrderDetailsRepository interface {
	Create(ctx context.Context, details model.OrderDetails) (model.OrderDetails, error)
	FindByID(ctx context.Context, detailsID int64) (model.OrderDetails, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.OrderDetails, error)
	Update(ctx context.Context, detailsID int64, patch OrderDetailsPatch) error
}
