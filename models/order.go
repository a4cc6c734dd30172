package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a checkout attempt for a store. It is created unpaid before the
// payment session is requested so the session metadata can carry its id;
// the payment callback flips IsPaid.
type Order struct {
	ID         string      `gorm:"primaryKey" json:"id"`
	StoreID    string      `gorm:"index;not null" json:"storeId"`
	IsPaid     bool        `gorm:"not null;default:false" json:"isPaid"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (o *Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem links an order to one purchased variant. Rows are immutable
// once written.
type OrderItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"index;not null" json:"orderId"`
	VariantID string    `gorm:"index;not null" json:"variantId"`
	Variant   Variant   `gorm:"foreignKey:VariantID" json:"variant,omitzero"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
