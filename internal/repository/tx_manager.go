package repository

import "context"

// TxRepos is the set of repositories bound to one DB transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	OrderDetails() OrderDetailsRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	CartDetails() CartDetailsRepository
	Catalog() CatalogRepository
	Users() UserRepository
}

// TransactionManager hides begin/commit/rollback from usecases. fn returning
// an error rolls the whole transaction back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
