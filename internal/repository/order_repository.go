package repository

import (
	"context"
	"time"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time // created_at >= From
	To     *time.Time // created_at < To
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// FindByIDFull preloads user, details and items.
	FindByIDFull(ctx context.Context, orderID int64) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	// SearchByPhoneDigits matches the digit substring against the owning
	// user's phone or a recipient phone embedded in the details meta_data.
	SearchByPhoneDigits(ctx context.Context, digits string) ([]model.Order, error)
	Delete(ctx context.Context, orderID int64) error
	// HasSuccessOrderWithProduct answers whether a SUCCESS order of the user
	// contains the product.
	HasSuccessOrderWithProduct(ctx context.Context, userID int64, productID int64) (bool, error)
}
