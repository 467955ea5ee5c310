package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusSuccess    OrderStatus = "SUCCESS"
	OrderStatusCanceled   OrderStatus = "CANCELED"
	// INCOMPLETE marks an order whose secondary writes (details, popularity)
	// failed after the order row was committed; reconciliation picks these up
	// instead of leaving them silently half-formed.
	OrderStatusIncomplete OrderStatus = "INCOMPLETE"
)

// Order is the immutable result of checking out a cart. Status and details
// stay mutable afterwards; items change only through the explicit add/remove
// operations, which recompute the total.
type Order struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64          `gorm:"index" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Details   *OrderDetails   `gorm:"foreignKey:OrderID" json:"details,omitempty"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
