package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable product in a store's catalog.
// It owns its images and variants; deleting a product removes both.
type Product struct {
	ID         string          `gorm:"primaryKey" json:"id"`
	StoreID    string          `gorm:"index;not null" json:"storeId"`
	CategoryID string          `gorm:"index;not null" json:"categoryId"`
	Category   Category        `gorm:"foreignKey:CategoryID" json:"category"`
	Name       string          `gorm:"not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsFeatured bool            `gorm:"not null;default:false" json:"isFeatured"`
	IsArchived bool            `gorm:"not null;default:false" json:"isArchived"`
	Images     []Image         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Variants   []Variant       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Image is a product photo stored by URL.
type Image struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"index;not null" json:"productId"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Image) TableName() string {
	return "images"
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
