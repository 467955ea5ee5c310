package repository

import (
	"context"

	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	orderDetails repo.OrderDetailsRepository
	carts        repo.CartRepository
	cartItems    repo.CartItemRepository
	cartDetails  repo.CartDetailsRepository
	catalog      repo.CatalogRepository
	users        repo.UserRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository              { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository      { return r.orderItems }
func (r *txReposGorm) OrderDetails() repo.OrderDetailsRepository { return r.orderDetails }
func (r *txReposGorm) Carts() repo.CartRepository                { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository        { return r.cartItems }
func (r *txReposGorm) CartDetails() repo.CartDetailsRepository   { return r.cartDetails }
func (r *txReposGorm) Catalog() repo.CatalogRepository           { return r.catalog }
func (r *txReposGorm) Users() repo.UserRepository                { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			orderItems:   NewOrderItemGormRepository(tx),
			orderDetails: NewOrderDetailsGormRepository(tx),
			carts:        NewCartGormRepository(tx),
			cartItems:    NewCartItemGormRepository(tx),
			cartDetails:  NewCartDetailsGormRepository(tx),
			catalog:      NewCatalogGormRepository(tx),
			users:        NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
