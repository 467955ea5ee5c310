package usecase

import (
	"context"
	"testing"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type orderFixture struct {
	tx          *txManagerMock
	cartRepo    *cartRepoMock
	itemRepo    *cartItemRepoMock
	orderRepo   *orderRepoMock
	detailsRepo *orderDetailsRepoMock
	catalogRepo *catalogRepoMock

	txOrders   *orderRepoMock
	txItems    *orderItemRepoMock
	txCatalog  *catalogRepoMock
	txCartItem *cartItemRepoMock

	uc *OrderUsecase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		cartRepo:    &cartRepoMock{},
		itemRepo:    &cartItemRepoMock{},
		orderRepo:   &orderRepoMock{},
		detailsRepo: &orderDetailsRepoMock{},
		catalogRepo: &catalogRepoMock{},
		txOrders:    &orderRepoMock{},
		txItems:     &orderItemRepoMock{},
		txCatalog:   &catalogRepoMock{},
		txCartItem:  &cartItemRepoMock{},
	}
	f.tx = &txManagerMock{Repos: &txReposStub{
		orders:     f.txOrders,
		orderItems: f.txItems,
		catalog:    f.txCatalog,
		cartItems:  f.txCartItem,
	}}
	f.uc = NewOrderUsecase(f.tx, f.cartRepo, f.itemRepo, f.orderRepo, f.detailsRepo, f.catalogRepo, zap.NewNop())
	return f
}

func TestCreateOrder_ChecksOutCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	userID := int64(5)

	f.cartRepo.On("FindBySessionID", ctx, "s1").
		Return(model.Cart{ID: 1, SessionID: "s1", UserID: &userID}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 10, CartID: 1, ProductID: 100, Amount: dec("2"), Comment: "ripe"},
		{ID: 11, CartID: 1, ProductID: 101, Amount: dec("1")},
	}, nil)

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txCatalog.On("FindProduct", ctx, int64(100), "uk").Return(model.Product{
		ID: 100, Price: dec("10.00"), Measurement: kgMeasurement(),
	}, nil)
	f.txCatalog.On("LockStock", ctx, int64(100)).Return(model.Stock{Amount: dec("2")}, nil)
	f.txCatalog.On("FindProduct", ctx, int64(101), "uk").Return(model.Product{
		ID: 101, Price: dec("5.00"), Measurement: gramMeasurement(),
	}, nil)
	f.txCatalog.On("LockStock", ctx, int64(101)).Return(model.Stock{Amount: dec("9")}, nil)

	f.txOrders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusNew &&
			o.Total.Equal(dec("25.00")) &&
			o.UserID != nil && *o.UserID == userID
	})).Return(int64(77), nil)

	f.txItems.On("CreateBulk", ctx, int64(77), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].Price.Equal(dec("10.00")) &&
			items[0].Measurement == "kg" &&
			items[0].Comment == "ripe"
	})).Return(nil)
	f.txCartItem.On("DeleteByCartID", ctx, int64(1)).Return(nil)

	f.detailsRepo.On("Create", ctx, mock.MatchedBy(func(d model.OrderDetails) bool {
		return d.OrderID == 77 && d.PaymentType == "card" && d.MetaData == `{"recipient":"Ivan"}`
	})).Return(model.OrderDetails{ID: 8, OrderID: 77}, nil)
	f.catalogRepo.On("IncrementPopularity", ctx, int64(100)).Return(nil)
	f.catalogRepo.On("IncrementPopularity", ctx, int64(101)).Return(nil)

	f.orderRepo.On("FindByIDFull", ctx, int64(77)).Return(model.Order{
		ID: 77, UserID: &userID, Status: model.OrderStatusNew, Total: dec("25.00"),
		Items: []model.OrderItem{{ID: 1, OrderID: 77, ProductID: 100, Amount: dec("2"), Price: dec("10.00")}},
	}, nil)

	out, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{
		PaymentType: "card",
		MetaData:    `{"recipient":"Ivan"}`,
	}, "uk")

	assert.NoError(t, err)
	assert.Equal(t, int64(77), out.ID)
	assert.Equal(t, "NEW", out.Status)
	assert.Equal(t, "25.00", out.Total)
	f.txCartItem.AssertExpectations(t)
	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_LocksStockInProductIDOrder(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	// Cart insertion order deliberately disagrees with product-id order.
	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{ID: 1, SessionID: "s1"}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 10, CartID: 1, ProductID: 102, Amount: dec("1")},
		{ID: 11, CartID: 1, ProductID: 100, Amount: dec("1")},
		{ID: 12, CartID: 1, ProductID: 101, Amount: dec("1")},
	}, nil)

	f.tx.On("WithinTx", ctx).Return(nil)
	for _, id := range []int64{100, 101, 102} {
		f.txCatalog.On("FindProduct", ctx, id, "uk").
			Return(model.Product{ID: id, Price: dec("1.00")}, nil)
	}

	var lockOrder []int64
	f.txCatalog.On("LockStock", ctx, mock.AnythingOfType("int64")).
		Run(func(args mock.Arguments) {
			lockOrder = append(lockOrder, args.Get(1).(int64))
		}).
		Return(model.Stock{Amount: dec("10")}, nil)

	f.txOrders.On("Create", ctx, mock.Anything).Return(int64(77), nil)
	f.txItems.On("CreateBulk", ctx, int64(77), mock.Anything).Return(nil)
	f.txCartItem.On("DeleteByCartID", ctx, int64(1)).Return(nil)
	f.detailsRepo.On("Create", ctx, mock.Anything).Return(model.OrderDetails{ID: 8, OrderID: 77}, nil)
	for _, id := range []int64{100, 101, 102} {
		f.catalogRepo.On("IncrementPopularity", ctx, id).Return(nil)
	}
	f.orderRepo.On("FindByIDFull", ctx, int64(77)).Return(model.Order{ID: 77}, nil)

	_, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assert.NoError(t, err)
	assert.Equal(t, []int64{100, 101, 102}, lockOrder)
}

func TestCreateOrder_AggregatesDuplicateProductLines(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	// Two lines of the same product lock the stock row once and are
	// validated against their combined amount.
	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{ID: 1}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 10, CartID: 1, ProductID: 100, Amount: dec("2"), CustomID: strPtr("c1")},
		{ID: 11, CartID: 1, ProductID: 100, Amount: dec("3"), CustomID: strPtr("c2")},
	}, nil)

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txCatalog.On("FindProduct", ctx, int64(100), "uk").
		Return(model.Product{ID: 100, Price: dec("1.00")}, nil).Once()
	f.txCatalog.On("LockStock", ctx, int64(100)).
		Return(model.Stock{Amount: dec("4")}, nil).Once()

	_, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assertHTTPCode(t, err, CodeOrderCantBeCreated)
	f.txCatalog.AssertExpectations(t)
	f.txOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_NoCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{}, repo.ErrNotFound)

	_, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assertHTTPCode(t, err, CodeCartIsNotCreated)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{ID: 1}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{}, nil)

	_, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assertHTTPCode(t, err, CodeCartIsEmpty)
}

func TestCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{ID: 1}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 10, CartID: 1, ProductID: 100, Amount: dec("5")},
	}, nil)

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txCatalog.On("FindProduct", ctx, int64(100), "uk").Return(model.Product{ID: 100, Price: dec("1")}, nil)
	f.txCatalog.On("LockStock", ctx, int64(100)).Return(model.Stock{Amount: dec("4")}, nil)

	_, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assertHTTPCode(t, err, CodeOrderCantBeCreated)
	f.txOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.txCartItem.AssertNotCalled(t, "DeleteByCartID", mock.Anything, mock.Anything)
}

func TestCreateOrder_MissingStockRowMeansZero(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{ID: 1}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 10, CartID: 1, ProductID: 100, Amount: dec("1")},
	}, nil)

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txCatalog.On("FindProduct", ctx, int64(100), "uk").Return(model.Product{ID: 100, Price: dec("1")}, nil)
	f.txCatalog.On("LockStock", ctx, int64(100)).Return(model.Stock{}, repo.ErrNotFound)

	_, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assertHTTPCode(t, err, CodeOrderCantBeCreated)
}

func TestCreateOrder_DetailsFailureMarksIncomplete(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.cartRepo.On("FindBySessionID", ctx, "s1").Return(model.Cart{ID: 1}, nil)
	f.itemRepo.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 10, CartID: 1, ProductID: 100, Amount: dec("1")},
	}, nil)

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txCatalog.On("FindProduct", ctx, int64(100), "uk").Return(model.Product{ID: 100, Price: dec("3.00")}, nil)
	f.txCatalog.On("LockStock", ctx, int64(100)).Return(model.Stock{Amount: dec("1")}, nil)
	f.txOrders.On("Create", ctx, mock.Anything).Return(int64(77), nil)
	f.txItems.On("CreateBulk", ctx, int64(77), mock.Anything).Return(nil)
	f.txCartItem.On("DeleteByCartID", ctx, int64(1)).Return(nil)

	f.detailsRepo.On("Create", ctx, mock.Anything).Return(model.OrderDetails{}, assert.AnError)
	f.catalogRepo.On("IncrementPopularity", ctx, int64(100)).Return(nil)
	f.orderRepo.On("UpdateStatus", ctx, int64(77), model.OrderStatusIncomplete).Return(nil)
	f.orderRepo.On("FindByIDFull", ctx, int64(77)).Return(model.Order{
		ID: 77, Status: model.OrderStatusIncomplete, Total: dec("3.00"),
	}, nil)

	out, err := f.uc.CreateOrder(ctx, "s1", CreateOrderInput{}, "uk")

	assert.NoError(t, err)
	assert.Equal(t, "INCOMPLETE", out.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestDirectCreateOrder_NormalizesGarbageMetaData(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orderRepo.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.Status == model.OrderStatusNew && o.Total.Equal(dec("99.99"))
	})).Return(int64(42), nil)
	f.detailsRepo.On("Create", ctx, mock.MatchedBy(func(d model.OrderDetails) bool {
		return d.OrderID == 42 && d.MetaData == "{}" && d.IsPaid
	})).Return(model.OrderDetails{ID: 1, OrderID: 42}, nil)
	f.orderRepo.On("FindByIDFull", ctx, int64(42)).
		Return(model.Order{ID: 42, Status: model.OrderStatusNew, Total: dec("99.99")}, nil)

	out, err := f.uc.DirectCreateOrder(ctx, DirectCreateOrderInput{
		Total:       "99.99",
		PaymentType: "cash",
		IsPaid:      true,
		MetaData:    "<<<not json>>>",
	})

	assert.NoError(t, err)
	assert.Equal(t, "99.99", out.Total)
	f.detailsRepo.AssertExpectations(t)
}

func TestDirectCreateOrder_InvalidTotal(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.DirectCreateOrder(context.Background(), DirectCreateOrderInput{Total: "-5"})
	assertHTTPCode(t, err, CodeInvalidAmount)

	_, err = f.uc.DirectCreateOrder(context.Background(), DirectCreateOrderInput{Total: "abc"})
	assertHTTPCode(t, err, CodeInvalidAmount)
}

func TestAddOrderItem_SnapshotsAndRecomputes(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txOrders.On("FindByID", ctx, int64(77)).Return(model.Order{ID: 77}, nil)
	f.txCatalog.On("FindProduct", ctx, int64(100), "uk").Return(model.Product{
		ID: 100, Price: dec("4.00"), Measurement: kgMeasurement(),
	}, nil)
	f.txItems.On("Create", ctx, mock.MatchedBy(func(it model.OrderItem) bool {
		return it.OrderID == 77 && it.Price.Equal(dec("4.00")) && it.Measurement == "kg"
	})).Return(model.OrderItem{ID: 5, OrderID: 77}, nil)

	f.txItems.On("ListByOrderID", ctx, int64(77)).Return([]model.OrderItem{
		{ID: 4, OrderID: 77, ProductID: 99, Amount: dec("1"), Price: dec("6.00")},
		{ID: 5, OrderID: 77, ProductID: 100, Amount: dec("2"), Price: dec("4.00")},
	}, nil)
	f.txOrders.On("UpdateTotal", ctx, int64(77), dec("14.00")).Return(nil)
	f.txOrders.On("FindByIDFull", ctx, int64(77)).
		Return(model.Order{ID: 77, Total: dec("14.00")}, nil)

	out, err := f.uc.AddOrderItem(ctx, AddOrderItemInput{
		OrderID: 77, ProductID: 100, Amount: "2",
	}, "uk")

	assert.NoError(t, err)
	assert.Equal(t, "14.00", out.Total)
	f.txOrders.AssertExpectations(t)
}

func TestAddOrderItem_UnknownOrder(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txOrders.On("FindByID", ctx, int64(77)).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.uc.AddOrderItem(ctx, AddOrderItemInput{OrderID: 77, ProductID: 1, Amount: "1"}, "uk")

	assertHTTPCode(t, err, CodeOrderNotFound)
}

func TestRemoveOrderItem_RecomputesWithoutBundleChildren(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txOrders.On("FindByID", ctx, int64(77)).Return(model.Order{ID: 77}, nil)
	f.txItems.On("FindByID", ctx, int64(5)).Return(model.OrderItem{ID: 5, OrderID: 77}, nil)
	f.txItems.On("DeleteByID", ctx, int64(5)).Return(nil)

	f.txItems.On("ListByOrderID", ctx, int64(77)).Return([]model.OrderItem{
		{ID: 4, OrderID: 77, Amount: dec("1"), Price: dec("6.00")},
		{ID: 6, OrderID: 77, Amount: dec("3"), Price: dec("9.99"), BundleID: strPtr("b1")},
	}, nil)
	f.txOrders.On("UpdateTotal", ctx, int64(77), dec("6.00")).Return(nil)
	f.txOrders.On("FindByIDFull", ctx, int64(77)).
		Return(model.Order{ID: 77, Total: dec("6.00")}, nil)

	out, err := f.uc.RemoveOrderItem(ctx, RemoveOrderItemInput{OrderID: 77, OrderItemID: 5})

	assert.NoError(t, err)
	assert.Equal(t, "6.00", out.Total)
}

func TestRemoveOrderItem_ForeignItem(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.tx.On("WithinTx", ctx).Return(nil)
	f.txOrders.On("FindByID", ctx, int64(77)).Return(model.Order{ID: 77}, nil)
	f.txItems.On("FindByID", ctx, int64(5)).Return(model.OrderItem{ID: 5, OrderID: 78}, nil)

	_, err := f.uc.RemoveOrderItem(ctx, RemoveOrderItemInput{OrderID: 77, OrderItemID: 5})

	assertHTTPCode(t, err, CodeItemNotFound)
	f.txItems.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestNormalizeJSON(t *testing.T) {
	assert.Equal(t, "{}", normalizeJSON(""))
	assert.Equal(t, "{}", normalizeJSON("garbage"))
	assert.Equal(t, "{}", normalizeJSON(`[1,2,3]`))
	assert.Equal(t, `{"a":1}`, normalizeJSON(`{"a":1}`))
}
