package model

import "time"

// Delivery and checkout-flow state attached one-to-one to a cart.
// MetaData is free-form JSON text; delivery-time updates merge keys into it
// instead of overwriting, so consumers must parse it defensively.
type CartDetails struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID       int64     `gorm:"not null;uniqueIndex" json:"cart_id"`
	DeliveryLat  *float64  `json:"delivery_lat"`
	DeliveryLng  *float64  `json:"delivery_lng"`
	DeliveryType string    `gorm:"type:varchar(100)" json:"delivery_type"`
	MetaData     string    `gorm:"type:text" json:"meta_data"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
