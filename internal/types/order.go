package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is one line item, embedded in the order's items JSON column.
type OrderItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Title      string    `json:"title"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
}

type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
	Items           datatypes.JSON `gorm:"column:items" json:"items"`
	TotalCents      int64          `gorm:"not null;column:total_cents" json:"total_cents"`
	Currency        string         `gorm:"not null;default:'usd';column:currency" json:"currency"`
	Status          string         `gorm:"not null;default:'pending';column:status" json:"status"`
	PaymentIntentID string         `gorm:"column:payment_intent_id" json:"payment_intent_id,omitempty"`
	// CreatedAt is assigned once at creation and never altered by updates.
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Order) TableName() string {
	return "order"
}

// StatBucket is one row of a grouped aggregation: a calendar month (1-12)
// or ISO weekday (1-7) key with its count or summed revenue.
type StatBucket struct {
	Bucket int   `gorm:"column:bucket" json:"bucket"`
	Total  int64 `gorm:"column:total" json:"total"`
}
