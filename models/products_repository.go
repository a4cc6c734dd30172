package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductsRepository struct {
	db *gorm.DB
}

// ProductFilters narrows the storefront product listing. Empty fields are
// ignored.
type ProductFilters struct {
	CategoryID string
	SizeID     string
	ColorID    string
	IsFeatured bool
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

func (r *ProductsRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Preload("Variants").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ListForStorefront returns a store's live products, newest first. Archived
// products are excluded, and so are products left with no live variant
// matching the size/color filters.
func (r *ProductsRepository) ListForStorefront(ctx context.Context, storeID string, filters ProductFilters) ([]Product, error) {
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND is_archived = false", storeID).
		Preload("Images").
		Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			db = db.Where("is_archived = false")
			if filters.SizeID != "" {
				db = db.Where("size_id = ?", filters.SizeID)
			}
			if filters.ColorID != "" {
				db = db.Where("color_id = ?", filters.ColorID)
			}
			return db
		}).
		Order("created_at DESC")

	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.IsFeatured {
		query = query.Where("is_featured = true")
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	listed := make([]Product, 0, len(products))
	for _, p := range products {
		if len(p.Variants) > 0 {
			listed = append(listed, p)
		}
	}
	return listed, nil
}

func (r *ProductsRepository) Create(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update replaces the product's own fields and its whole image set in a
// single transaction.
func (r *ProductsRepository) Update(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]any{
				"name":        product.Name,
				"price":       product.Price,
				"category_id": product.CategoryID,
				"is_featured": product.IsFeatured,
				"is_archived": product.IsArchived,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&Image{}).Error; err != nil {
			return err
		}
		for i := range product.Images {
			product.Images[i].ID = ""
			product.Images[i].ProductID = product.ID
		}
		if len(product.Images) > 0 {
			if err := tx.Create(&product.Images).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete hard-deletes a product; owned images and variants go with it.
func (r *ProductsRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Select("Images", "Variants").
		Delete(&Product{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
