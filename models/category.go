package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a product category within a store.
type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StoreID   string    `gorm:"index;not null" json:"storeId"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Size is a selectable size option (e.g. "S", "42").
type Size struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StoreID   string    `gorm:"index;not null" json:"storeId"`
	Name      string    `gorm:"not null" json:"name"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Size) TableName() string {
	return "sizes"
}

func (s *Size) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Color is a selectable color option; Value holds the hex code.
type Color struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	StoreID   string    `gorm:"index;not null" json:"storeId"`
	Name      string    `gorm:"not null" json:"name"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Color) TableName() string {
	return "colors"
}

func (c *Color) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
