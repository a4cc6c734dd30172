package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variant is a purchasable size/color combination of a product with its
// own stock count. Variants are never hard-deleted once persisted: removing
// one from a product archives it instead, so historical order items keep a
// valid reference.
type Variant struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ProductID  string    `gorm:"index;not null" json:"productId"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"product,omitzero"`
	SizeID     string    `gorm:"not null" json:"sizeId"`
	Size       Size      `gorm:"foreignKey:SizeID" json:"size,omitzero"`
	ColorID    string    `gorm:"not null" json:"colorId"`
	Color      Color     `gorm:"foreignKey:ColorID" json:"color,omitzero"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity"`
	IsArchived bool      `gorm:"not null;default:false" json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (v *Variant) TableName() string {
	return "variants"
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
