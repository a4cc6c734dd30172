package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrVariantNotFound is returned when a variant is not found.
var ErrVariantNotFound = errors.New("variant not found")

// VariantStore is the persistence contract the variant reconciler works
// against. InTx hands the callback a store bound to one transaction, so a
// failed reconciliation leaves no partial writes behind.
type VariantStore interface {
	FindProduct(ctx context.Context, productID string) (*Product, error)
	VariantsByProduct(ctx context.Context, productID string) ([]Variant, error)
	CreateVariant(ctx context.Context, variant *Variant) error
	UpdateVariant(ctx context.Context, variant *Variant) error
	ArchiveVariant(ctx context.Context, id string) error
	InTx(ctx context.Context, fn func(tx VariantStore) error) error
}

type VariantsRepository struct {
	db *gorm.DB
}

func NewVariantsRepository(db *gorm.DB) *VariantsRepository {
	return &VariantsRepository{db: db}
}

func (r *VariantsRepository) FindProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// VariantsByProduct returns every variant of the product, archived ones
// included, ordered by creation time.
func (r *VariantsRepository) VariantsByProduct(ctx context.Context, productID string) ([]Variant, error) {
	var variants []Variant
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *VariantsRepository) CreateVariant(ctx context.Context, variant *Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *VariantsRepository) UpdateVariant(ctx context.Context, variant *Variant) error {
	res := r.db.WithContext(ctx).
		Model(&Variant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]any{
			"size_id":  variant.SizeID,
			"color_id": variant.ColorID,
			"quantity": variant.Quantity,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

// ArchiveVariant tombstones a variant. The row stays put for order history.
func (r *VariantsRepository) ArchiveVariant(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&Variant{}).
		Where("id = ?", id).
		Update("is_archived", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func (r *VariantsRepository) InTx(ctx context.Context, fn func(tx VariantStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&VariantsRepository{db: tx})
	})
}

// GetWithDetails loads one variant with its size, color and product
// (images included) for the storefront product page.
func (r *VariantsRepository) GetWithDetails(ctx context.Context, id string) (*Variant, error) {
	var variant Variant
	if err := r.db.WithContext(ctx).
		Preload("Size").
		Preload("Color").
		Preload("Product").
		Preload("Product.Images").
		Where("id = ?", id).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return &variant, nil
}
