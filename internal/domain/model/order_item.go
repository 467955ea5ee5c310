package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem freezes price and measurement at order-creation time; later
// catalog changes never affect it. Bundle linkage is carried over from the
// source cart item.
type OrderItem struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64           `gorm:"not null;index" json:"order_id"`
	ProductID      int64           `gorm:"not null;index" json:"product_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Measurement    string          `gorm:"type:varchar(100)" json:"measurement"`
	Comment        string          `gorm:"type:text" json:"comment"`
	BundleID       *string         `gorm:"type:varchar(255);index" json:"bundle_id"`
	ParentBundleID *string         `gorm:"type:varchar(255);index" json:"parent_bundle_id"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// IsBundleChild mirrors CartItem: children stay out of order totals.
func (i OrderItem) IsBundleChild() bool {
	return i.BundleID != nil && *i.BundleID != ""
}
