package model

import "time"

// Payment and delivery metadata attached one-to-one to an order. Payment
// fields are opaque pass-through values from the payment provider; MetaData
// is free-form JSON text with no enforced schema.
type OrderDetails struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;uniqueIndex" json:"order_id"`
	PaymentType string    `gorm:"type:varchar(100)" json:"payment_type"`
	PaymentID   string    `gorm:"type:varchar(255)" json:"payment_id"`
	PaymentLink string    `gorm:"type:text" json:"payment_link"`
	IsPaid      bool      `gorm:"not null;default:false" json:"is_paid"`
	ReceiptURL  string    `gorm:"type:text" json:"receipt_url"`
	MetaData    string    `gorm:"type:text" json:"meta_data"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
