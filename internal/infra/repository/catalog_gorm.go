package repository

import (
	"context"
	"errors"

	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/domain/model"
	repo "github.com/RGBwebstudio/ditku-travel-api-sub001/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogGormRepository reads products and stock maintained elsewhere.
// lang is accepted for interface compatibility; title translation happens
// outside this engine.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) FindProduct(ctx context.Context, productID int64, lang string) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).
		Preload("Measurement").
		Preload("Category").
		Where("id = ?", productID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *CatalogGormRepository) FindStock(ctx context.Context, productID int64) (model.Stock, error) {
	var st model.Stock

	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Stock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Stock{}, err
	}
	return st, nil
}

// LockStock takes a FOR UPDATE lock on the stock row; inside a checkout
// transaction this serializes competing orders for the same product.
func (r *CatalogGormRepository) LockStock(ctx context.Context, productID int64) (model.Stock, error) {
	var st model.Stock

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&st).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Stock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Stock{}, err
	}
	return st, nil
}

func (r *CatalogGormRepository) ListByCategory(ctx context.Context, categoryID int64, excludeProductIDs []int64, limit int, lang string) ([]model.Product, error) {
	return r.list(ctx, []int64{categoryID}, excludeProductIDs, limit)
}

func (r *CatalogGormRepository) ListByCategories(ctx context.Context, categoryIDs []int64, excludeProductIDs []int64, limit int, lang string) ([]model.Product, error) {
	return r.list(ctx, categoryIDs, excludeProductIDs, limit)
}

func (r *CatalogGormRepository) list(ctx context.Context, categoryIDs []int64, excludeProductIDs []int64, limit int) ([]model.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Measurement").
		Preload("Category").
		Where("category_id IN ?", categoryIDs).
		Where("is_active = ?", true)

	if len(excludeProductIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeProductIDs)
	}

	var products []model.Product
	err := q.Order("popularity desc, id asc").Limit(limit).Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IncrementPopularity is the single write the engine performs on the
// catalog: the checkout counter.
func (r *CatalogGormRepository) IncrementPopularity(ctx context.Context, productID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("popularity", gorm.Expr("popularity + 1"))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
