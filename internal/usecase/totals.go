package usecase

import (
	"strings"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"

	"github.com/shopspring/decimal"
)

// Conversion factors to grams/milliliters, keyed by measurement short title.
// An unrecognized unit contributes zero weight.
var unitFactors = map[string]int64{
	"g":  1,
	"kg": 1000,
	"ml": 1,
	"l":  1000,
	"г":  1,
	"кг": 1000,
	"мл": 1,
	"л":  1000,
}

// Totals are the cart aggregates over non-bundle-child items.
type Totals struct {
	Amount   decimal.Decimal
	Total    decimal.Decimal
	WeightKg decimal.Decimal
}

func (t Totals) AmountString() string { return t.Amount.String() }

// TotalString renders with exactly 2 fraction digits.
func (t Totals) TotalString() string { return t.Total.StringFixed(2) }

// WeightString renders with exactly 3 fraction digits.
func (t Totals) WeightString() string { return t.WeightKg.StringFixed(3) }

// CalcTotals is pure: same items and products always yield the same result,
// no side effects. Bundle children are excluded from all three aggregates;
// items whose product is missing from the lookup contribute only to amount.
func CalcTotals(items []model.CartItem, products map[int64]model.Product) Totals {
	var amount, total, weightG decimal.Decimal

	for _, it := range items {
		if it.IsBundleChild() {
			continue
		}

		amount = amount.Add(it.Amount)

		p, ok := products[it.ProductID]
		if !ok {
			continue
		}

		total = total.Add(it.Amount.Mul(p.Price))

		if f := measurementFactor(p.Measurement); f > 0 {
			weightG = weightG.Add(it.Amount.Mul(p.Weight).Mul(decimal.NewFromInt(f)))
		}
	}

	return Totals{
		Amount:   amount,
		Total:    total,
		WeightKg: weightG.Div(decimal.NewFromInt(1000)),
	}
}

func measurementFactor(m *model.Measurement) int64 {
	if m == nil {
		return 0
	}
	return unitFactors[strings.ToLower(strings.TrimSpace(m.ShortTitle))]
}

// measurementLabel is the unit label frozen into order item snapshots.
func measurementLabel(m *model.Measurement) string {
	if m == nil {
		return ""
	}
	if m.ShortTitle != "" {
		return m.ShortTitle
	}
	return m.Title
}
