package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalog entities. The engine reads them through CatalogRepository and never
// writes, except the product popularity counter bumped at checkout.

type Measurement struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`
	// ShortTitle drives weight unit conversion: g/kg/ml/l.
	ShortTitle string `gorm:"type:varchar(20);not null" json:"short_title"`
}

type Category struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`
}

type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Weight        decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"weight"`
	MeasurementID *int64          `gorm:"index" json:"measurement_id"`
	Measurement   *Measurement    `gorm:"foreignKey:MeasurementID" json:"measurement,omitempty"`
	CategoryID    *int64          `gorm:"index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Popularity    int64           `gorm:"not null;default:0" json:"popularity"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Stock is the live availability ledger, one row per product.
type Stock struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64           `gorm:"not null;uniqueIndex" json:"product_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"amount"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
