package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderUsecase turns carts into orders and mutates order item sets.
type OrderUsecase struct {
	tx          repo.TransactionManager
	cartRepo    repo.CartRepository
	itemRepo    repo.CartItemRepository
	orderRepo   repo.OrderRepository
	detailsRepo repo.OrderDetailsRepository
	catalogRepo repo.CatalogRepository
	log         *zap.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	itemRepo repo.CartItemRepository,
	orderRepo repo.OrderRepository,
	detailsRepo repo.OrderDetailsRepository,
	catalogRepo repo.CatalogRepository,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		cartRepo:    cartRepo,
		itemRepo:    itemRepo,
		orderRepo:   orderRepo,
		detailsRepo: detailsRepo,
		catalogRepo: catalogRepo,
		log:         log,
	}
}

type CreateOrderInput struct {
	PaymentType string `json:"payment_type"`
	MetaData    string `json:"meta_data"`
}

type OrderItemOutput struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	Amount         string  `json:"amount"`
	Price          string  `json:"price"`
	Measurement    string  `json:"measurement"`
	Comment        string  `json:"comment,omitempty"`
	BundleID       *string `json:"bundle_id,omitempty"`
	ParentBundleID *string `json:"parent_bundle_id,omitempty"`
}

type OrderOutput struct {
	ID        int64               `json:"id"`
	UserID    *int64              `json:"user_id"`
	Status    string              `json:"status"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Details   *model.OrderDetails `json:"details,omitempty"`
	Items     []OrderItemOutput   `json:"items"`
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Amount:         it.Amount.String(),
			Price:          it.Price.StringFixed(2),
			Measurement:    it.Measurement,
			Comment:        it.Comment,
			BundleID:       it.BundleID,
			ParentBundleID: it.ParentBundleID,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Total:     o.Total.StringFixed(2),
		CreatedAt: o.CreatedAt,
		Details:   o.Details,
		Items:     items,
	}
}

// CreateOrder checks out the session's cart. Stock validation, the order
// row, item snapshots and the cart clear run in one transaction with the
// stock rows locked, so two checkouts cannot both take the last unit.
// Details creation and popularity counters run after commit, best-effort:
// a failure marks the order INCOMPLETE for reconciliation instead of
// unwinding it.
func (u *OrderUsecase) CreateOrder(ctx context.Context, sessionID string, in CreateOrderInput, lang string) (OrderOutput, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeCartIsNotCreated)
	}
	if err != nil {
		return OrderOutput{}, err
	}

	items, err := u.itemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return OrderOutput{}, err
	}
	if len(items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeCartIsEmpty)
	}

	var orderID int64

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// Re-check stock under lock: it may have moved since the cart was
		// last materialized. Requested amounts collapse per product and the
		// rows lock in product-id order, so two concurrent checkouts over
		// overlapping carts always acquire the locks in the same sequence.
		requested := make(map[int64]decimal.Decimal, len(items))
		for _, it := range items {
			requested[it.ProductID] = requested[it.ProductID].Add(it.Amount)
		}
		productIDs := make([]int64, 0, len(requested))
		for id := range requested {
			productIDs = append(productIDs, id)
		}
		slices.Sort(productIDs)

		products := make(map[int64]model.Product, len(productIDs))
		for _, id := range productIDs {
			p, err := r.Catalog().FindProduct(ctx, id, lang)
			if err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusBadRequest, CodeOrderCantBeCreated)
				}
				return err
			}
			products[id] = p

			available := decimal.Zero
			if st, err := r.Catalog().LockStock(ctx, id); err == nil {
				available = st.Amount
			} else if err != repo.ErrNotFound {
				return err
			}
			if requested[id].GreaterThan(available) {
				return NewHTTPError(http.StatusBadRequest, CodeOrderCantBeCreated)
			}
		}

		totals := CalcTotals(items, products)

		id, err := r.Orders().Create(ctx, model.Order{
			UserID: cart.UserID,
			Status: model.OrderStatusNew,
			Total:  totals.Total.Round(2),
		})
		if err != nil {
			return err
		}
		orderID = id

		snapshots := make([]model.OrderItem, 0, len(items))
		for _, it := range items {
			p := products[it.ProductID]
			snapshots = append(snapshots, model.OrderItem{
				ProductID:      it.ProductID,
				Amount:         it.Amount,
				Price:          p.Price,
				Measurement:    measurementLabel(p.Measurement),
				Comment:        it.Comment,
				BundleID:       it.BundleID,
				ParentBundleID: it.ParentBundleID,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, snapshots); err != nil {
			return err
		}

		// Successful checkout empties the source cart; the shell stays.
		return r.CartItems().DeleteByCartID(ctx, cart.ID)
	})
	if err != nil {
		return OrderOutput{}, err
	}

	incomplete := false

	_, err = u.detailsRepo.Create(ctx, model.OrderDetails{
		OrderID:     orderID,
		PaymentType: in.PaymentType,
		MetaData:    normalizeJSON(in.MetaData),
	})
	if err != nil {
		u.log.Warn("order details creation failed",
			zap.Int64("order_id", orderID), zap.Error(err))
		incomplete = true
	}

	for _, it := range items {
		if err := u.catalogRepo.IncrementPopularity(ctx, it.ProductID); err != nil {
			u.log.Warn("popularity increment failed",
				zap.Int64("product_id", it.ProductID), zap.Error(err))
		}
	}

	if incomplete {
		if err := u.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusIncomplete); err != nil {
			u.log.Warn("marking order incomplete failed",
				zap.Int64("order_id", orderID), zap.Error(err))
		}
	}

	full, err := u.orderRepo.FindByIDFull(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(full), nil
}

type DirectCreateOrderInput struct {
	UserID      *int64 `json:"user_id"`
	Total       string `json:"total"`
	PaymentType string `json:"payment_type"`
	IsPaid      bool   `json:"is_paid"`
	MetaData    string `json:"meta_data"`
}

// DirectCreateOrder is the checkout bypass for out-of-band flows: an
// Order/OrderDetails pair built straight from an opaque meta_data blob, no
// cart involved. The blob is parsed defensively; garbage becomes "{}".
func (u *OrderUsecase) DirectCreateOrder(ctx context.Context, in DirectCreateOrderInput) (OrderOutput, error) {
	total := decimal.Zero
	if in.Total != "" {
		if parsed, err := decimal.NewFromString(in.Total); err == nil && !parsed.IsNegative() {
			total = parsed
		} else {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeInvalidAmount)
		}
	}

	orderID, err := u.orderRepo.Create(ctx, model.Order{
		UserID: in.UserID,
		Status: model.OrderStatusNew,
		Total:  total.Round(2),
	})
	if err != nil {
		return OrderOutput{}, err
	}

	_, err = u.detailsRepo.Create(ctx, model.OrderDetails{
		OrderID:     orderID,
		PaymentType: in.PaymentType,
		IsPaid:      in.IsPaid,
		MetaData:    normalizeJSON(in.MetaData),
	})
	if err != nil {
		u.log.Warn("order details creation failed",
			zap.Int64("order_id", orderID), zap.Error(err))
		if err := u.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusIncomplete); err != nil {
			u.log.Warn("marking order incomplete failed",
				zap.Int64("order_id", orderID), zap.Error(err))
		}
	}

	full, err := u.orderRepo.FindByIDFull(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(full), nil
}

type AddOrderItemInput struct {
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Amount    string `json:"amount"`
	Comment   string `json:"comment"`
}

// AddOrderItem appends a snapshot of the product's current price to an
// existing order and recomputes the persisted total.
func (u *OrderUsecase) AddOrderItem(ctx context.Context, in AddOrderItemInput, lang string) (OrderOutput, error) {
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, in.OrderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, CodeOrderNotFound)
			}
			return err
		}

		p, err := r.Catalog().FindProduct(ctx, in.ProductID, lang)
		if err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, CodeProductNotFound)
			}
			return err
		}

		_, err = r.OrderItems().Create(ctx, model.OrderItem{
			OrderID:     in.OrderID,
			ProductID:   in.ProductID,
			Amount:      amount,
			Price:       p.Price,
			Measurement: measurementLabel(p.Measurement),
			Comment:     in.Comment,
		})
		if err != nil {
			return err
		}

		if err := u.recomputeTotal(ctx, r, in.OrderID); err != nil {
			return err
		}

		full, err := r.Orders().FindByIDFull(ctx, in.OrderID)
		if err != nil {
			return err
		}
		out = toOrderOutput(full)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type RemoveOrderItemInput struct {
	OrderID     int64 `json:"order_id"`
	OrderItemID int64 `json:"order_item_id"`
}

// RemoveOrderItem drops one snapshot row and recomputes the total over the
// remaining items.
func (u *OrderUsecase) RemoveOrderItem(ctx context.Context, in RemoveOrderItemInput) (OrderOutput, error) {
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, in.OrderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, CodeOrderNotFound)
			}
			return err
		}

		item, err := r.OrderItems().FindByID(ctx, in.OrderItemID)
		if err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, CodeItemNotFound)
			}
			return err
		}
		if item.OrderID != in.OrderID {
			return NewHTTPError(http.StatusNotFound, CodeItemNotFound)
		}

		if err := r.OrderItems().DeleteByID(ctx, item.ID); err != nil {
			return err
		}

		if err := u.recomputeTotal(ctx, r, in.OrderID); err != nil {
			return err
		}

		full, err := r.Orders().FindByIDFull(ctx, in.OrderID)
		if err != nil {
			return err
		}
		out = toOrderOutput(full)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// recomputeTotal persists total = Σ price × amount over the order's
// remaining non-bundle-child items.
func (u *OrderUsecase) recomputeTotal(ctx context.Context, r repo.TxRepos, orderID int64) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, it := range items {
		if it.IsBundleChild() {
			continue
		}
		total = total.Add(it.Price.Mul(it.Amount))
	}

	return r.Orders().UpdateTotal(ctx, orderID, total.Round(2))
}

// normalizeJSON keeps a valid JSON object as-is and degrades everything
// else to an empty object.
func normalizeJSON(raw string) string {
	if raw == "" {
		return "{}"
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "{}"
	}
	return raw
}
