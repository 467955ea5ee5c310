package repository

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"

	"github.com/shopspring/decimal"
)

// CartItemKey is the merge identity of a line item: re-adding the same key
// sums amounts instead of inserting a second row.
type CartItemKey struct {
	ProductID      int64
	CustomID       *string
	BundleID       *string
	ParentBundleID *string
}

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, itemID int64) (model.CartItem, error)
	// UpsertAdd merges into the row matching the key by summing amounts, or
	// inserts a new row. The merge is a locking read-plus-increment inside one
	// DB transaction so concurrent adds cannot lose an update.
	UpsertAdd(ctx context.Context, cartID int64, key CartItemKey, amount decimal.Decimal, comment string) error
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	UpdateAmount(ctx context.Context, itemID int64, amount decimal.Decimal) error
	UpdateComment(ctx context.Context, itemID int64, comment string) error
	DeleteByID(ctx context.Context, itemID int64) error
	DeleteByCartID(ctx context.Context, cartID int64) error
}
