package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"go.uber.org/zap"
)

// OrderLifecycleUsecase covers everything after creation: status
// transitions, details updates, search, listing and the purchase check.
type OrderLifecycleUsecase struct {
	orderRepo   repo.OrderRepository
	detailsRepo repo.OrderDetailsRepository
	log         *zap.Logger
}

func NewOrderLifecycleUsecase(
	orderRepo repo.OrderRepository,
	detailsRepo repo.OrderDetailsRepository,
	log *zap.Logger,
) *OrderLifecycleUsecase {
	return &OrderLifecycleUsecase{orderRepo: orderRepo, detailsRepo: detailsRepo, log: log}
}

var knownStatuses = map[model.OrderStatus]struct{}{
	model.OrderStatusNew:        {},
	model.OrderStatusInProgress: {},
	model.OrderStatusDelivering: {},
	model.OrderStatusSuccess:    {},
	model.OrderStatusCanceled:   {},
	model.OrderStatusIncomplete: {},
}

// UpdateStatus sets any known status; transitions are deliberately
// unrestricted.
func (u *OrderLifecycleUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (OrderOutput, error) {
	s := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if _, ok := knownStatuses[s]; !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeInvalidStatus)
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, s); err != nil {
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, CodeOrderNotFound)
		}
		return OrderOutput{}, err
	}

	full, err := u.orderRepo.FindByIDFull(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(full), nil
}

type UpdateOrderDetailsInput struct {
	MetaData *string `json:"meta_data"`
	IsPaid   *bool   `json:"is_paid"`
	Status   string  `json:"status"`
}

// UpdateOrderDetails patches meta_data/is_paid on the order's details row
// and, when a status is supplied, drives the transition best-effort: a
// failing transition is logged, never surfaced.
func (u *OrderLifecycleUsecase) UpdateOrderDetails(ctx context.Context, orderID int64, in UpdateOrderDetailsInput) (model.OrderDetails, error) {
	details, err := u.detailsRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if err == repo.ErrNotFound {
			return model.OrderDetails{}, NewHTTPError(http.StatusNotFound, CodeOrderNotFound)
		}
		return model.OrderDetails{}, err
	}

	patch := repo.OrderDetailsPatch{IsPaid: in.IsPaid}
	if in.MetaData != nil {
		normalized := normalizeJSON(*in.MetaData)
		patch.MetaData = &normalized
	}
	if err := u.detailsRepo.Update(ctx, details.ID, patch); err != nil {
		return model.OrderDetails{}, err
	}

	if in.Status != "" {
		if _, err := u.UpdateStatus(ctx, orderID, in.Status); err != nil {
			u.log.Warn("status transition from details update failed",
				zap.Int64("order_id", orderID), zap.String("status", in.Status), zap.Error(err))
		}
	}

	return u.detailsRepo.FindByID(ctx, details.ID)
}

func (u *OrderLifecycleUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	full, err := u.orderRepo.FindByIDFull(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, CodeOrderNotFound)
	}
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(full), nil
}

// DeleteOrder removes the order graph; dependent rows outside it surface as
// a domain conflict, not a raw DB error.
func (u *OrderLifecycleUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	err := u.orderRepo.Delete(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, CodeOrderNotFound)
	}
	if err == repo.ErrHasChildren {
		return NewHTTPError(http.StatusConflict, CodeHasChildRows)
	}
	return err
}

// SearchOrders: a purely numeric query is tried as an order id first; when
// that misses (or the query is not numeric) the digits are matched against
// user/recipient phones, with a 3-digit minimum.
func (u *OrderLifecycleUsecase) SearchOrders(ctx context.Context, q string) ([]OrderOutput, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []OrderOutput{}, nil
	}

	if id, err := strconv.ParseInt(q, 10, 64); err == nil {
		full, err := u.orderRepo.FindByIDFull(ctx, id)
		if err == nil {
			return []OrderOutput{toOrderOutput(full)}, nil
		}
		if err != repo.ErrNotFound {
			return nil, err
		}
	}

	digits := stripNonDigits(q)
	if len(digits) < 3 {
		return []OrderOutput{}, nil
	}

	orders, err := u.orderRepo.SearchByPhoneDigits(ctx, digits)
	if err != nil {
		return nil, err
	}

	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o))
	}
	return out, nil
}

type ListOrdersInput struct {
	Page     int
	Limit    int
	Status   string
	UserID   *int64
	DateFrom string
	DateTo   string
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
}

// ListOrders pages the order log with optional status and inclusive
// DD.MM.YY date-range filters.
func (u *OrderLifecycleUsecase) ListOrders(ctx context.Context, in ListOrdersInput) (OrderListOutput, error) {
	f := repo.OrderListFilter{
		Page:   in.Page,
		Limit:  in.Limit,
		Status: strings.ToUpper(strings.TrimSpace(in.Status)),
		UserID: in.UserID,
	}

	if f.Status != "" {
		if _, ok := knownStatuses[model.OrderStatus(f.Status)]; !ok {
			return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, CodeInvalidStatus)
		}
	}

	if in.DateFrom != "" {
		from, err := parseShortDate(in.DateFrom)
		if err != nil {
			return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, CodeInvalidDate)
		}
		f.From = &from
	}
	if in.DateTo != "" {
		to, err := parseShortDate(in.DateTo)
		if err != nil {
			return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, CodeInvalidDate)
		}
		// The whole day counts: the filter excludes the next midnight
		// rather than capping at 23:59:59, so sub-second timestamps at
		// the end of the day still match.
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	orders, total, err := u.orderRepo.List(ctx, f)
	if err != nil {
		return OrderListOutput{}, err
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderOutput(o))
	}
	return OrderListOutput{Items: items, Total: total}, nil
}

func (u *OrderLifecycleUsecase) ListUserOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	orders, total, err := u.orderRepo.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, err
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderOutput(o))
	}
	return OrderListOutput{Items: items, Total: total}, nil
}

type PurchaseCheckOutput struct {
	HasPurchased bool `json:"has_purchased"`
}

// CheckUserProductPurchase gates post-purchase features: true iff a SUCCESS
// order of the user contains the product.
func (u *OrderLifecycleUsecase) CheckUserProductPurchase(ctx context.Context, userID int64, productID int64) (PurchaseCheckOutput, error) {
	has, err := u.orderRepo.HasSuccessOrderWithProduct(ctx, userID, productID)
	if err != nil {
		return PurchaseCheckOutput{}, err
	}
	return PurchaseCheckOutput{HasPurchased: has}, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseShortDate parses DD.MM.YY. The two-digit year is resolved as
// YY < 50 → 20YY, otherwise 19YY. Known to misread dates past 2049; kept
// on purpose to match the established filter format.
func parseShortDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Time{}, NewHTTPError(http.StatusBadRequest, CodeInvalidDate)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, NewHTTPError(http.StatusBadRequest, CodeInvalidDate)
	}
	if year < 0 || year > 99 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, NewHTTPError(http.StatusBadRequest, CodeInvalidDate)
	}

	if year < 50 {
		year += 2000
	} else {
		year += 1900
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, NewHTTPError(http.StatusBadRequest, CodeInvalidDate)
	}
	return t, nil
}
