package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"go.uber.org/zap"
)

// UnavailableItemsResponse lists every stock-short item plus one
// deduplicated cross-category replacement pool.
type UnavailableItemsResponse struct {
	Items            []CartItemView `json:"items"`
	RecomendedToSwap []ProductView  `json:"recomended_to_swap"`
}

// UnavailableItems cross-checks every non-bundle-child line against live
// stock. Catalog lookup failure degrades the pool to empty, it never fails
// the request.
func (u *CartUsecase) UnavailableItems(ctx context.Context, sessionID string, lang string) (UnavailableItemsResponse, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return UnavailableItemsResponse{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	if err != nil {
		return UnavailableItemsResponse{}, err
	}

	m, err := u.materialize(ctx, cart, lang)
	if err != nil {
		return UnavailableItemsResponse{}, err
	}

	out := UnavailableItemsResponse{
		Items:            []CartItemView{},
		RecomendedToSwap: []ProductView{},
	}

	categorySet := map[int64]struct{}{}
	excluded := []int64{}

	for _, it := range m.items {
		if !m.itemUnavailable(it) {
			continue
		}

		v := CartItemView{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Amount:           it.Amount.String(),
			Comment:          it.Comment,
			CustomID:         it.CustomID,
			BundleID:         it.BundleID,
			ParentBundleID:   it.ParentBundleID,
			Unavailable:      true,
			RecomendedToSwap: u.swapCandidates(ctx, m.products[it.ProductID], lang),
		}
		if p, ok := m.products[it.ProductID]; ok {
			pv := toProductView(p)
			v.Product = &pv
			if p.CategoryID != nil {
				categorySet[*p.CategoryID] = struct{}{}
			}
		}
		excluded = append(excluded, it.ProductID)
		out.Items = append(out.Items, v)
	}

	if len(categorySet) > 0 {
		out.RecomendedToSwap = u.replacementPool(ctx, categorySet, excluded, lang)
	}

	return out, nil
}

// replacementPool queries all affected categories at once and dedupes by
// product id, capped at swapLimit.
func (u *CartUsecase) replacementPool(ctx context.Context, categorySet map[int64]struct{}, excluded []int64, lang string) []ProductView {
	categoryIDs := make([]int64, 0, len(categorySet))
	for id := range categorySet {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Slice(categoryIDs, func(i, j int) bool { return categoryIDs[i] < categoryIDs[j] })

	candidates, err := u.catalogRepo.ListByCategories(ctx, categoryIDs, excluded, swapLimit, lang)
	if err != nil {
		u.log.Warn("replacement pool lookup failed", zap.Error(err))
		return []ProductView{}
	}

	seen := map[int64]struct{}{}
	pool := make([]ProductView, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		pool = append(pool, toProductView(c))
		if len(pool) == swapLimit {
			break
		}
	}
	return pool
}

// ReplaceUnavailableItem swaps a stock-short item for a substitute product
// as two sequential writes: delete the original, re-create the line for the
// replacement carrying over amount, comment and bundle linkage.
func (u *CartUsecase) ReplaceUnavailableItem(ctx context.Context, sessionID string, itemID int64, replacementProductID int64, lang string) (CartResponse, error) {
	item, err := u.ownedItem(ctx, sessionID, itemID)
	if err != nil {
		return CartResponse{}, err
	}

	if _, err := u.catalogRepo.FindProduct(ctx, replacementProductID, lang); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeProductNotFound)
		}
		return CartResponse{}, err
	}

	if err := u.itemRepo.DeleteByID(ctx, item.ID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, CodeItemNotFound)
		}
		return CartResponse{}, err
	}

	_, err = u.itemRepo.Create(ctx, model.CartItem{
		CartID:         item.CartID,
		ProductID:      replacementProductID,
		Amount:         item.Amount,
		Comment:        item.Comment,
		CustomID:       item.CustomID,
		BundleID:       item.BundleID,
		ParentBundleID: item.ParentBundleID,
	})
	if err != nil {
		return CartResponse{}, err
	}

	return u.GetCart(ctx, sessionID, lang)
}

// RecommendedProducts is the cross-sell block: popular products from the
// categories already present in the cart, minus the cart's own products.
// Served through the cache when one is configured; every cache failure
// degrades to a direct catalog read.
func (u *CartUsecase) RecommendedProducts(ctx context.Context, sessionID string, lang string) ([]ProductView, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return []ProductView{}, nil
	}
	if err != nil {
		return nil, err
	}

	m, err := u.materialize(ctx, cart, lang)
	if err != nil {
		return nil, err
	}

	categorySet := map[int64]struct{}{}
	exclude := make([]int64, 0, len(m.items))
	for _, it := range m.items {
		exclude = append(exclude, it.ProductID)
		if p, ok := m.products[it.ProductID]; ok && p.CategoryID != nil {
			categorySet[*p.CategoryID] = struct{}{}
		}
	}
	if len(categorySet) == 0 {
		return []ProductView{}, nil
	}

	categoryIDs := make([]int64, 0, len(categorySet))
	for id := range categorySet {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Slice(categoryIDs, func(i, j int) bool { return categoryIDs[i] < categoryIDs[j] })

	sort.Slice(exclude, func(i, j int) bool { return exclude[i] < exclude[j] })
	key := recommendKey(categoryIDs, exclude, lang)
	if u.cache != nil {
		if cached, err := u.cache.GetProducts(ctx, key); err != nil {
			u.log.Warn("recommendation cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := u.catalogRepo.ListByCategories(ctx, categoryIDs, exclude, swapLimit, lang)
	if err != nil {
		u.log.Warn("recommended products lookup failed", zap.Error(err))
		return []ProductView{}, nil
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	if u.cache != nil {
		if err := u.cache.SetProducts(ctx, key, views); err != nil {
			u.log.Warn("recommendation cache write failed", zap.Error(err))
		}
	}

	return views, nil
}

// Key includes the excluded products so carts with the same categories but
// different contents do not share a pool.
func recommendKey(categoryIDs []int64, exclude []int64, lang string) string {
	return "recommend:" + lang + ":" + joinIDs(categoryIDs) + ":x:" + joinIDs(exclude)
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ",")
}
