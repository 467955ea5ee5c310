package repository

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
)

// CatalogRepository is the read-only view of the product catalog and stock
// ledger the engine depends on. lang is passed through for translated
// titles; the engine itself never interprets it. The only write the engine
// is allowed is the popularity counter bumped at checkout.
type CatalogRepository interface {
	FindProduct(ctx context.Context, productID int64, lang string) (model.Product, error)
	FindStock(ctx context.Context, productID int64) (model.Stock, error)
	// LockStock reads the stock row FOR UPDATE; only meaningful inside a
	// transaction, where it serializes concurrent checkouts on the same
	// product.
	LockStock(ctx context.Context, productID int64) (model.Stock, error)
	ListByCategory(ctx context.Context, categoryID int64, excludeProductIDs []int64, limit int, lang string) ([]model.Product, error)
	ListByCategories(ctx context.Context, categoryIDs []int64, excludeProductIDs []int64, limit int, lang string) ([]model.Product, error)
	IncrementPopularity(ctx context.Context, productID int64) error
}
