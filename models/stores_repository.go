package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

type StoresRepository struct {
	db *gorm.DB
}

func NewStoresRepository(db *gorm.DB) *StoresRepository {
	return &StoresRepository{db: db}
}

func (r *StoresRepository) GetByID(ctx context.Context, id string) (*Store, error) {
	var store Store
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &store, nil
}

// GetByIDAndUser resolves a store only if it is owned by the given user.
// Used as the ownership gate in front of all admin mutations.
func (r *StoresRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*Store, error) {
	var store Store
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &store, nil
}
