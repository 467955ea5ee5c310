package usecase

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the usecase tests.

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	args := m.Called(ctx, cart)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) FindBySessionID(ctx context.Context, sessionID string) (model.Cart, error) {
	args := m.Called(ctx, sessionID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) UpdateUser(ctx context.Context, cartID int64, userID *int64) error {
	return m.Called(ctx, cartID, userID).Error(0)
}

func (m *cartRepoMock) Delete(ctx context.Context, cartID int64) error {
	return m.Called(ctx, cartID).Error(0)
}

type cartItemRepoMock struct{ mock.Mock }

func (m *cartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartItemRepoMock) FindByID(ctx context.Context, itemID int64) (model.CartItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) UpsertAdd(ctx context.Context, cartID int64, key repo.CartItemKey, amount decimal.Decimal, comment string) error {
	return m.Called(ctx, cartID, key, amount, comment).Error(0)
}

func (m *cartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) UpdateAmount(ctx context.Context, itemID int64, amount decimal.Decimal) error {
	return m.Called(ctx, itemID, amount).Error(0)
}

func (m *cartItemRepoMock) UpdateComment(ctx context.Context, itemID int64, comment string) error {
	return m.Called(ctx, itemID, comment).Error(0)
}

func (m *cartItemRepoMock) DeleteByID(ctx context.Context, itemID int64) error {
	return m.Called(ctx, itemID).Error(0)
}

func (m *cartItemRepoMock) DeleteByCartID(ctx context.Context, cartID int64) error {
	return m.Called(ctx, cartID).Error(0)
}

type cartDetailsRepoMock struct{ mock.Mock }

func (m *cartDetailsRepoMock) Create(ctx context.Context, details model.CartDetails) (model.CartDetails, error) {
	args := m.Called(ctx, details)
	d, _ := args.Get(0).(model.CartDetails)
	return d, args.Error(1)
}

func (m *cartDetailsRepoMock) FindByID(ctx context.Context, detailsID int64) (model.CartDetails, error) {
	args := m.Called(ctx, detailsID)
	d, _ := args.Get(0).(model.CartDetails)
	return d, args.Error(1)
}

func (m *cartDetailsRepoMock) FindByCartID(ctx context.Context, cartID int64) (model.CartDetails, error) {
	args := m.Called(ctx, cartID)
	d, _ := args.Get(0).(model.CartDetails)
	return d, args.Error(1)
}

func (m *cartDetailsRepoMock) Update(ctx context.Context, detailsID int64, patch repo.CartDetailsPatch) error {
	return m.Called(ctx, detailsID, patch).Error(0)
}

type catalogRepoMock struct{ mock.Mock }

func (m *catalogRepoMock) FindProduct(ctx context.Context, productID int64, lang string) (model.Product, error) {
	args := m.Called(ctx, productID, lang)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *catalogRepoMock) FindStock(ctx context.Context, productID int64) (model.Stock, error) {
	args := m.Called(ctx, productID)
	st, _ := args.Get(0).(model.Stock)
	return st, args.Error(1)
}

func (m *catalogRepoMock) LockStock(ctx context.Context, productID int64) (model.Stock, error) {
	args := m.Called(ctx, productID)
	st, _ := args.Get(0).(model.Stock)
	return st, args.Error(1)
}

func (m *catalogRepoMock) ListByCategory(ctx context.Context, categoryID int64, excludeProductIDs []int64, limit int, lang string) ([]model.Product, error) {
	args := m.Called(ctx, categoryID, excludeProductIDs, limit, lang)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *catalogRepoMock) ListByCategories(ctx context.Context, categoryIDs []int64, excludeProductIDs []int64, limit int, lang string) ([]model.Product, error) {
	args := m.Called(ctx, categoryIDs, excludeProductIDs, limit, lang)
	ps, _ := args.Get(0).([]model.Product)
	return ps, args.Error(1)
}

func (m *catalogRepoMock) IncrementPopularity(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *orderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) FindByIDFull(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *orderRepoMock) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	return m.Called(ctx, orderID, total).Error(0)
}

func (m *orderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return orders, total, args.Error(2)
}

func (m *orderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return orders, total, args.Error(2)
}

func (m *orderRepoMock) SearchByPhoneDigits(ctx context.Context, digits string) ([]model.Order, error) {
	args := m.Called(ctx, digits)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *orderRepoMock) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *orderRepoMock) HasSuccessOrderWithProduct(ctx context.Context, userID int64, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type orderItemRepoMock struct{ mock.Mock }

func (m *orderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *orderItemRepoMock) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	args := m.Called(ctx, item)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Error(1)
}

func (m *orderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *orderItemRepoMock) FindByID(ctx context.Context, itemID int64) (model.OrderItem, error) {
	args := m.Called(ctx, itemID)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Error(1)
}

func (m *orderItemRepoMock) DeleteByID(ctx context.Context, itemID int64) error {
	return m.Called(ctx, itemID).Error(0)
}

type orderDetailsRepoMock struct{ mock.Mock }

func (m *orderDetailsRepoMock) Create(ctx context.Context, details model.OrderDetails) (model.OrderDetails, error) {
	args := m.Called(ctx, details)
	d, _ := args.Get(0).(model.OrderDetails)
	return d, args.Error(1)
}

func (m *orderDetailsRepoMock) FindByID(ctx context.Context, detailsID int64) (model.OrderDetails, error) {
	args := m.Called(ctx, detailsID)
	d, _ := args.Get(0).(model.OrderDetails)
	return d, args.Error(1)
}

func (m *orderDetailsRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.OrderDetails, error) {
	args := m.Called(ctx, orderID)
	d, _ := args.Get(0).(model.OrderDetails)
	return d, args.Error(1)
}

func (m *orderDetailsRepoMock) Update(ctx context.Context, detailsID int64, patch repo.OrderDetailsPatch) error {
	return m.Called(ctx, detailsID, patch).Error(0)
}

// txManagerMock runs the callback against a fixed set of repos, recording
// only that WithinTx was entered.
type txManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type txReposStub struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	orderDetails repo.OrderDetailsRepository
	carts        repo.CartRepository
	cartItems    repo.CartItemRepository
	cartDetails  repo.CartDetailsRepository
	catalog      repo.CatalogRepository
	users        repo.UserRepository
}

func (r *txReposStub) Orders() repo.OrderRepository              { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository      { return r.orderItems }
func (r *txReposStub) OrderDetails() repo.OrderDetailsRepository { return r.orderDetails }
func (r *txReposStub) Carts() repo.CartRepository                { return r.carts }
func (r *txReposStub) CartItems() repo.CartItemRepository        { return r.cartItems }
func (r *txReposStub) CartDetails() repo.CartDetailsRepository   { return r.cartDetails }
func (r *txReposStub) Catalog() repo.CatalogRepository           { return r.catalog }
func (r *txReposStub) Users() repo.UserRepository                { return r.users }

// cacheMock implements ProductListCache.
type cacheMock struct{ mock.Mock }

func (m *cacheMock) GetProducts(ctx context.Context, key string) ([]ProductView, error) {
	args := m.Called(ctx, key)
	views, _ := args.Get(0).([]ProductView)
	return views, args.Error(1)
}

func (m *cacheMock) SetProducts(ctx context.Context, key string, items []ProductView) error {
	return m.Called(ctx, key, items).Error(0)
}
