package repository

import (
	"context"
	"errors"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

func (r *CartItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// UpsertAdd merges by (product, custom_id, bundle_id, parent_bundle_id)
// under a FOR UPDATE lock so two concurrent adds for the same key serialize
// into one row with the summed amount.
func (r *CartItemGormRepository) UpsertAdd(ctx context.Context, cartID int64, key repo.CartItemKey, amount decimal.Decimal, comment string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		q := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, key.ProductID)
		q = whereNullable(q, "custom_id", key.CustomID)
		q = whereNullable(q, "bundle_id", key.BundleID)
		q = whereNullable(q, "parent_bundle_id", key.ParentBundleID)

		err := q.First(&item).Error
		if err == nil {
			updates := map[string]any{"amount": item.Amount.Add(amount)}
			if comment != "" {
				updates["comment"] = comment
			}
			return tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Updates(updates).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&model.CartItem{
			CartID:         cartID,
			ProductID:      key.ProductID,
			Amount:         amount,
			Comment:        comment,
			CustomID:       key.CustomID,
			BundleID:       key.BundleID,
			ParentBundleID: key.ParentBundleID,
		}).Error
	})
}

func (r *CartItemGormRepository) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

func (r *CartItemGormRepository) UpdateAmount(ctx context.Context, itemID int64, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Update("amount", amount)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) UpdateComment(ctx context.Context, itemID int64, comment string) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Update("comment", comment)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) DeleteByID(ctx context.Context, itemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, itemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) DeleteByCartID(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}

// whereNullable matches a nullable key column: nil or empty means the row's
// column must be NULL too, otherwise the merge keys would collide.
func whereNullable(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil || *v == "" {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}
