package model

import "time"

// One active cart per browser session. UserID is nullable: anonymous carts
// get attached to a user on login via the update-user endpoint.
type Cart struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"session_id"`
	UserID    *int64       `gorm:"index" json:"user_id"`
	Details   *CartDetails `gorm:"foreignKey:CartID" json:"details,omitempty"`
	Items     []CartItem   `gorm:"foreignKey:CartID" json:"items,omitempty"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
