package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart line item. BundleID marks the item as a child of a bundle (excluded
// from cart totals), ParentBundleID marks it as a bundle parent; the two are
// mutually exclusive. CustomID keys idempotent upserts from the client.
type CartItem struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID         int64           `gorm:"not null;index" json:"cart_id"`
	ProductID      int64           `gorm:"not null;index" json:"product_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount"`
	Comment        string          `gorm:"type:text" json:"comment"`
	CustomID       *string         `gorm:"type:varchar(255)" json:"custom_id"`
	BundleID       *string         `gorm:"type:varchar(255);index" json:"bundle_id"`
	ParentBundleID *string         `gorm:"type:varchar(255);index" json:"parent_bundle_id"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// IsBundleChild reports whether the item belongs to a bundle and therefore
// stays out of the cart's amount/total/weight aggregates.
func (i CartItem) IsBundleChild() bool {
	return i.BundleID != nil && *i.BundleID != ""
}
