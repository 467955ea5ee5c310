package repository

import (
	"context"
	"errors"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"gorm.io/gorm"
)

type CartDetailsGormRepository struct {
	db *gorm.DB
}

func NewCartDetailsGormRepository(db *gorm.DB) *CartDetailsGormRepository {
	return &CartDetailsGormRepository{db: db}
}

func (r *CartDetailsGormRepository) Create(ctx context.Context, details model.CartDetails) (model.CartDetails, error) {
	if err := r.db.WithContext(ctx).Create(&details).Error; err != nil {
		return model.CartDetails{}, err
	}
	return details, nil
}

func (r *CartDetailsGormRepository) FindByID(ctx context.Context, detailsID int64) (model.CartDetails, error) {
	var details model.CartDetails

	err := r.db.WithContext(ctx).Where("id = ?", detailsID).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartDetails{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartDetails{}, err
	}
	return details, nil
}

func (r *CartDetailsGormRepository) FindByCartID(ctx context.Context, cartID int64) (model.CartDetails, error) {
	var details model.CartDetails

	err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartDetails{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartDetails{}, err
	}
	return details, nil
}

// Update patches only the fields set on the patch.
func (r *CartDetailsGormRepository) Update(ctx context.Context, detailsID int64, patch repo.CartDetailsPatch) error {
	updates := map[string]any{}
	if patch.DeliveryLat != nil {
		updates["delivery_lat"] = *patch.DeliveryLat
	}
	if patch.DeliveryLng != nil {
		updates["delivery_lng"] = *patch.DeliveryLng
	}
	if patch.DeliveryType != nil {
		updates["delivery_type"] = *patch.DeliveryType
	}
	if patch.MetaData != nil {
		updates["meta_data"] = *patch.MetaData
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.CartDetails{}).
		Where("id = ?", detailsID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
