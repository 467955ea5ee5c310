package usecase

import (
	"context"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Measurement string `json:"measurement,omitempty"`
	CategoryID  *int64 `json:"category_id,omitempty"`
}

type CartItemView struct {
	ID             int64        `json:"id"`
	ProductID      int64        `json:"product_id"`
	Amount         string       `json:"amount"`
	Comment        string       `json:"comment,omitempty"`
	CustomID       *string      `json:"custom_id,omitempty"`
	BundleID       *string      `json:"bundle_id,omitempty"`
	ParentBundleID *string      `json:"parent_bundle_id,omitempty"`
	Product        *ProductView `json:"product,omitempty"`
	Unavailable    bool         `json:"unavailable"`
	// Same-category substitutes offered when the item is stock-short.
	// Field name kept as the public API spells it.
	RecomendedToSwap []ProductView `json:"recomended_to_swap"`
}

type CartPayload struct {
	ID        int64              `json:"id"`
	SessionID string             `json:"session_id"`
	UserID    *int64             `json:"user_id"`
	Details   *model.CartDetails `json:"details,omitempty"`
	Items     []CartItemView     `json:"items"`
}

// CartResponse carries the materialized cart plus its aggregates. Cart is
// nil when the session has no cart yet; that is a normal answer, not an
// error.
type CartResponse struct {
	Cart          *CartPayload `json:"cart"`
	Amount        string       `json:"amount"`
	Total         string       `json:"total"`
	WeightKg      string       `json:"weight_kg"`
	MinOrderPrice string       `json:"min_order_price"`
}

func (u *CartUsecase) nullCartResponse() CartResponse {
	return CartResponse{
		Cart:          nil,
		Amount:        "0",
		Total:         "0.00",
		WeightKg:      "0.000",
		MinOrderPrice: u.minOrderPrice.StringFixed(2),
	}
}

func toProductView(p model.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price.StringFixed(2),
		Measurement: measurementLabel(p.Measurement),
		CategoryID:  p.CategoryID,
	}
}

// materializedCart is a cart with its items joined against live product and
// stock data, ready for aggregation and availability checks.
type materializedCart struct {
	cart     model.Cart
	items    []model.CartItem
	products map[int64]model.Product
	stocks   map[int64]decimal.Decimal
	totals   Totals
}

func (m materializedCart) itemUnavailable(it model.CartItem) bool {
	if it.IsBundleChild() {
		return false
	}
	return isUnavailable(it.Amount, m.stocks[it.ProductID])
}

// isUnavailable: requested more than the ledger holds. Equal amounts are
// available.
func isUnavailable(requested, stock decimal.Decimal) bool {
	return requested.GreaterThan(decimal.Zero) && stock.LessThan(requested)
}

func (u *CartUsecase) materialize(ctx context.Context, cart model.Cart, lang string) (materializedCart, error) {
	items, err := u.itemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return materializedCart{}, err
	}

	products := make(map[int64]model.Product, len(items))
	stocks := make(map[int64]decimal.Decimal, len(items))

	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}

		p, err := u.catalogRepo.FindProduct(ctx, it.ProductID, lang)
		if err != nil {
			// A vanished product degrades that line, not the whole cart.
			u.log.Warn("cart item product lookup failed",
				zap.Int64("product_id", it.ProductID), zap.Error(err))
			continue
		}
		products[it.ProductID] = p

		st, err := u.catalogRepo.FindStock(ctx, it.ProductID)
		if err != nil {
			stocks[it.ProductID] = decimal.Zero
			continue
		}
		stocks[it.ProductID] = st.Amount
	}

	return materializedCart{
		cart:     cart,
		items:    items,
		products: products,
		stocks:   stocks,
		totals:   CalcTotals(items, products),
	}, nil
}

// buildCartResponse turns a materialized cart into the API shape, attaching
// swap recommendations to every stock-short item.
func (u *CartUsecase) buildCartResponse(ctx context.Context, m materializedCart, lang string) CartResponse {
	views := make([]CartItemView, 0, len(m.items))

	for _, it := range m.items {
		v := CartItemView{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Amount:           it.Amount.String(),
			Comment:          it.Comment,
			CustomID:         it.CustomID,
			BundleID:         it.BundleID,
			ParentBundleID:   it.ParentBundleID,
			RecomendedToSwap: []ProductView{},
		}

		if p, ok := m.products[it.ProductID]; ok {
			pv := toProductView(p)
			v.Product = &pv
		}

		if m.itemUnavailable(it) {
			v.Unavailable = true
			v.RecomendedToSwap = u.swapCandidates(ctx, m.products[it.ProductID], lang)
		}

		views = append(views, v)
	}

	return CartResponse{
		Cart: &CartPayload{
			ID:        m.cart.ID,
			SessionID: m.cart.SessionID,
			UserID:    m.cart.UserID,
			Details:   m.cart.Details,
			Items:     views,
		},
		Amount:        m.totals.AmountString(),
		Total:         m.totals.TotalString(),
		WeightKg:      m.totals.WeightString(),
		MinOrderPrice: u.minOrderPrice.StringFixed(2),
	}
}

// swapCandidates fetches up to swapLimit same-category substitutes.
// Lookup failure is non-fatal: logged, empty list returned.
func (u *CartUsecase) swapCandidates(ctx context.Context, p model.Product, lang string) []ProductView {
	if p.CategoryID == nil {
		return []ProductView{}
	}

	candidates, err := u.catalogRepo.ListByCategory(ctx, *p.CategoryID, []int64{p.ID}, swapLimit, lang)
	if err != nil {
		u.log.Warn("swap candidates lookup failed",
			zap.Int64("product_id", p.ID), zap.Error(err))
		return []ProductView{}
	}

	views := make([]ProductView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, toProductView(c))
	}
	return views
}
