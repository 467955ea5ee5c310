package repository

import (
	"context"
	"errors"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"gorm.io/gorm"
)

type OrderDetailsGormRepository struct {
	db *gorm.DB
}

func NewOrderDetailsGormRepository(db *gorm.DB) *OrderDetailsGormRepository {
	return &OrderDetailsGormRepository{db: db}
}

func (r *OrderDetailsGormRepository) Create(ctx context.Context, details model.OrderDetails) (model.OrderDetails, error) {
	if err := r.db.WithContext(ctx).Create(&details).Error; err != nil {
		return model.OrderDetails{}, err
	}
	return details, nil
}

func (r *OrderDetailsGormRepository) FindByID(ctx context.Context, detailsID int64) (model.OrderDetails, error) {
	var details model.OrderDetails

	err := r.db.WithContext(ctx).Where("id = ?", detailsID).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderDetails{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderDetails{}, err
	}
	return details, nil
}

func (r *OrderDetailsGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.OrderDetails, error) {
	var details model.OrderDetails

	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&details).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderDetails{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderDetails{}, err
	}
	return details, nil
}

func (r *OrderDetailsGormRepository) Update(ctx context.Context, detailsID int64, patch repo.OrderDetailsPatch) error {
	updates := map[string]any{}
	if patch.MetaData != nil {
		updates["meta_data"] = *patch.MetaData
	}
	if patch.IsPaid != nil {
		updates["is_paid"] = *patch.IsPaid
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.OrderDetails{}).
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
