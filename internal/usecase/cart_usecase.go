package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// swapLimit caps replacement candidate lists everywhere.
const swapLimit = 10

// ProductListCache is an optional read-through cache for recommendation
// pools. A miss is (nil, nil); errors are treated as misses by callers.
type ProductListCache interface {
	GetProducts(ctx context.Context, key string) ([]ProductView, error)
	SetProducts(ctx context.Context, key string, items []ProductView) error
}

// CartUsecase owns the session-scoped cart: identity, items, details,
// availability reconciliation and the aggregates served with every read.
type CartUsecase struct {
	cartRepo    repo.CartRepository
	itemRepo    repo.CartItemRepository
	detailsRepo repo.CartDetailsRepository
	catalogRepo repo.CatalogRepository
	userRepo    repo.UserRepository
	cache       ProductListCache
	// Shop-wide checkout threshold, echoed with every cart payload so the
	// client can render the "minimum order" hint.
	minOrderPrice decimal.Decimal
	log           *zap.Logger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	itemRepo repo.CartItemRepository,
	detailsRepo repo.CartDetailsRepository,
	catalogRepo repo.CatalogRepository,
	userRepo repo.UserRepository,
	cache ProductListCache,
	minOrderPrice decimal.Decimal,
	log *zap.Logger,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:      cartRepo,
		itemRepo:      itemRepo,
		detailsRepo:   detailsRepo,
		catalogRepo:   catalogRepo,
		userRepo:      userRepo,
		cache:         cache,
		minOrderPrice: minOrderPrice,
		log:           log,
	}
}

type AddItemInput struct {
	ProductID      int64   `json:"product_id"`
	Amount         string  `json:"amount"`
	Comment        string  `json:"comment"`
	CustomID       *string `json:"custom_id"`
	BundleID       *string `json:"bundle_id"`
	ParentBundleID *string `json:"parent_bundle_id"`
}

type CartDetailsInput struct {
	DeliveryLat  *float64 `json:"delivery_lat"`
	DeliveryLng  *float64 `json:"delivery_lng"`
	DeliveryType *string  `json:"delivery_type"`
	MetaData     *string  `json:"meta_data"`
}

type UpdateCartInput struct {
	UserID  *int64            `json:"user_id"`
	Details *CartDetailsInput `json:"details"`
}

// CreateCart registers the one cart a session may have. The details row is
// created best-effort: its failure is logged, the cart still exists.
func (u *CartUsecase) CreateCart(ctx context.Context, sessionID string, userID *int64) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeInvalidSession)
	}

	cart, err := u.cartRepo.Create(ctx, model.Cart{SessionID: sessionID, UserID: userID})
	if err == repo.ErrDuplicate {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeCartAlreadyExists)
	}
	if err != nil {
		return CartResponse{}, err
	}

	details, err := u.detailsRepo.Create(ctx, model.CartDetails{CartID: cart.ID, MetaData: "{}"})
	if err != nil {
		u.log.Warn("cart details creation failed", zap.Int64("cart_id", cart.ID), zap.Error(err))
	} else {
		cart.Details = &details
	}

	return CartResponse{
		Cart: &CartPayload{
			ID:        cart.ID,
			SessionID: cart.SessionID,
			UserID:    cart.UserID,
			Details:   cart.Details,
			Items:     []CartItemView{},
		},
		Amount:        "0",
		Total:         "0.00",
		WeightKg:      "0.000",
		MinOrderPrice: u.minOrderPrice.StringFixed(2),
	}, nil
}

// GetCart returns the materialized cart. A session without a cart gets the
// null-cart sentinel, never an error.
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string, lang string) (CartResponse, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return u.nullCartResponse(), nil
	}
	if err != nil {
		return CartResponse{}, err
	}

	m, err := u.materialize(ctx, cart, lang)
	if err != nil {
		return CartResponse{}, err
	}

	return u.buildCartResponse(ctx, m, lang), nil
}

// UpdateCart reassigns the owner and/or merges partial details fields.
func (u *CartUsecase) UpdateCart(ctx context.Context, sessionID string, in UpdateCartInput, lang string) (CartResponse, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	if err != nil {
		return CartResponse{}, err
	}

	if in.UserID != nil {
		if err := u.cartRepo.UpdateUser(ctx, cart.ID, in.UserID); err != nil {
			return CartResponse{}, err
		}
	}

	if in.Details != nil {
		if err := u.patchDetails(ctx, cart.ID, *in.Details); err != nil {
			return CartResponse{}, err
		}
	}

	return u.GetCart(ctx, sessionID, lang)
}

func (u *CartUsecase) patchDetails(ctx context.Context, cartID int64, in CartDetailsInput) error {
	details, err := u.detailsRepo.FindByCartID(ctx, cartID)
	if err == repo.ErrNotFound {
		// Shell was created without details (best-effort path); recover here.
		details, err = u.detailsRepo.Create(ctx, model.CartDetails{CartID: cartID, MetaData: "{}"})
	}
	if err != nil {
		return err
	}

	return u.detailsRepo.Update(ctx, details.ID, repo.CartDetailsPatch{
		DeliveryLat:  in.DeliveryLat,
		DeliveryLng:  in.DeliveryLng,
		DeliveryType: in.DeliveryType,
		MetaData:     in.MetaData,
	})
}

// UpdateCartDetails patches the details row addressed by its own id.
func (u *CartUsecase) UpdateCartDetails(ctx context.Context, detailsID int64, in CartDetailsInput) (model.CartDetails, error) {
	if _, err := u.detailsRepo.FindByID(ctx, detailsID); err != nil {
		if err == repo.ErrNotFound {
			return model.CartDetails{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
		}
		return model.CartDetails{}, err
	}

	err := u.detailsRepo.Update(ctx, detailsID, repo.CartDetailsPatch{
		DeliveryLat:  in.DeliveryLat,
		DeliveryLng:  in.DeliveryLng,
		DeliveryType: in.DeliveryType,
		MetaData:     in.MetaData,
	})
	if err != nil {
		return model.CartDetails{}, err
	}

	return u.detailsRepo.FindByID(ctx, detailsID)
}

// UpdateDeliveryTime merges the given keys into details.meta_data instead of
// overwriting it. Existing malformed meta_data degrades to an empty object.
func (u *CartUsecase) UpdateDeliveryTime(ctx context.Context, sessionID string, fields map[string]any) (model.CartDetails, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return model.CartDetails{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	if err != nil {
		return model.CartDetails{}, err
	}

	details, err := u.detailsRepo.FindByCartID(ctx, cart.ID)
	if err == repo.ErrNotFound {
		details, err = u.detailsRepo.Create(ctx, model.CartDetails{CartID: cart.ID, MetaData: "{}"})
	}
	if err != nil {
		return model.CartDetails{}, err
	}

	meta := map[string]any{}
	if details.MetaData != "" {
		if err := json.Unmarshal([]byte(details.MetaData), &meta); err != nil {
			u.log.Warn("cart meta_data is not valid JSON, resetting",
				zap.Int64("cart_id", cart.ID))
			meta = map[string]any{}
		}
	}
	for k, v := range fields {
		meta[k] = v
	}

	raw, err := json.Marshal(meta)
	if err != nil {
		return model.CartDetails{}, err
	}
	merged := string(raw)

	if err := u.detailsRepo.Update(ctx, details.ID, repo.CartDetailsPatch{MetaData: &merged}); err != nil {
		return model.CartDetails{}, err
	}

	return u.detailsRepo.FindByID(ctx, details.ID)
}

// UpdateUserOfCart migrates an anonymous cart to an authenticated user.
// Defensive: a missing user makes this a no-op, not an error.
func (u *CartUsecase) UpdateUserOfCart(ctx context.Context, sessionID string, userID int64, lang string) (CartResponse, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	if err != nil {
		return CartResponse{}, err
	}

	if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
		if err == repo.ErrNotFound {
			u.log.Info("cart user reassignment skipped, user missing",
				zap.Int64("cart_id", cart.ID), zap.Int64("user_id", userID))
			return u.GetCart(ctx, sessionID, lang)
		}
		return CartResponse{}, err
	}

	if err := u.cartRepo.UpdateUser(ctx, cart.ID, &userID); err != nil {
		return CartResponse{}, err
	}

	return u.GetCart(ctx, sessionID, lang)
}

// AddItems adds or merges items: an existing row with the same
// (product, custom_id, bundle_id, parent_bundle_id) key gets its amount
// summed instead of a duplicate row.
func (u *CartUsecase) AddItems(ctx context.Context, sessionID string, inputs []AddItemInput, lang string) (CartResponse, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeCartIsNotCreated)
	}
	if err != nil {
		return CartResponse{}, err
	}

	for _, in := range inputs {
		amount, err := parseAmount(in.Amount)
		if err != nil {
			return CartResponse{}, err
		}
		if hasValue(in.BundleID) && hasValue(in.ParentBundleID) {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeBundleConflict)
		}

		if _, err := u.catalogRepo.FindProduct(ctx, in.ProductID, lang); err != nil {
			if err == repo.ErrNotFound {
				return CartResponse{}, NewHTTPError(http.StatusBadRequest, CodeProductNotFound)
			}
			return CartResponse{}, err
		}

		key := repo.CartItemKey{
			ProductID:      in.ProductID,
			CustomID:       in.CustomID,
			BundleID:       in.BundleID,
			ParentBundleID: in.ParentBundleID,
		}
		if err := u.itemRepo.UpsertAdd(ctx, cart.ID, key, amount, in.Comment); err != nil {
			return CartResponse{}, err
		}
	}

	return u.GetCart(ctx, sessionID, lang)
}

// UpdateItemAmount sets an absolute amount on one line item.
func (u *CartUsecase) UpdateItemAmount(ctx context.Context, sessionID string, itemID int64, rawAmount string, lang string) (CartResponse, error) {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return CartResponse{}, err
	}

	if _, err := u.ownedItem(ctx, sessionID, itemID); err != nil {
		return CartResponse{}, err
	}

	if err := u.itemRepo.UpdateAmount(ctx, itemID, amount); err != nil {
		return CartResponse{}, err
	}

	return u.GetCart(ctx, sessionID, lang)
}

func (u *CartUsecase) UpdateItemComment(ctx context.Context, sessionID string, itemID int64, comment string, lang string) (CartResponse, error) {
	if _, err := u.ownedItem(ctx, sessionID, itemID); err != nil {
		return CartResponse{}, err
	}

	if err := u.itemRepo.UpdateComment(ctx, itemID, comment); err != nil {
		return CartResponse{}, err
	}

	return u.GetCart(ctx, sessionID, lang)
}

func (u *CartUsecase) DeleteItem(ctx context.Context, sessionID string, itemID int64, lang string) (CartResponse, error) {
	if _, err := u.ownedItem(ctx, sessionID, itemID); err != nil {
		return CartResponse{}, err
	}

	if err := u.itemRepo.DeleteByID(ctx, itemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, CodeItemNotFound)
		}
		return CartResponse{}, err
	}

	return u.GetCart(ctx, sessionID, lang)
}

// ClearCart removes every item and keeps the Cart/CartDetails shell.
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string, lang string) (CartResponse, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	if err != nil {
		return CartResponse{}, err
	}

	if err := u.itemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		return CartResponse{}, err
	}

	return u.GetCart(ctx, sessionID, lang)
}

// DeleteCart removes the cart entirely, details and items included.
func (u *CartUsecase) DeleteCart(ctx context.Context, cartID int64) error {
	err := u.cartRepo.Delete(ctx, cartID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	return err
}

// ownedItem loads the item and verifies it belongs to the session's cart.
func (u *CartUsecase) ownedItem(ctx context.Context, sessionID string, itemID int64) (model.CartItem, error) {
	cart, err := u.cartRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, CodeCartNotFound)
	}
	if err != nil {
		return model.CartItem{}, err
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, CodeItemNotFound)
	}
	if err != nil {
		return model.CartItem{}, err
	}
	if item.CartID != cart.ID {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, CodeItemNotFound)
	}

	return item, nil
}

// parseAmount accepts a non-negative decimal with up to 3 fraction digits.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, CodeInvalidAmount)
	}
	if amount.IsNegative() || amount.Exponent() < -3 {
		return decimal.Zero, NewHTTPError(http.StatusBadRequest, CodeInvalidAmount)
	}
	return amount, nil
}

func hasValue(s *string) bool {
	return s != nil && *s != ""
}
