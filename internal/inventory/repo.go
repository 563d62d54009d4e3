package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonarlo/storefront-backend/pkg/db/models"
)

// Repository exposes persistence operations for catalog rows.
type Repository interface {
	FindByName(ctx context.Context, name string) (*models.Perfume, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*models.Perfume, error)
	ListActive(ctx context.Context) ([]models.Perfume, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByName matches a catalog row by case-insensitive exact name, limited
// to one row. Provider-side item naming may drift from catalog naming, so a
// miss surfaces as gorm.ErrRecordNotFound for the caller to treat softly.
func (r *repository) FindByName(ctx context.Context, name string) (*models.Perfume, error) {
	var perfume models.Perfume
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		First(&perfume).Error
	if err != nil {
		return nil, err
	}
	return &perfume, nil
}

// DecrementStock records a sale as a single arithmetic update so concurrent
// decrements serialize in the database. Stock is not floored at zero.
func (r *repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (*models.Perfume, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Perfume{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"quantity_available": gorm.Expr("quantity_available - ?", qty),
			"quantity_sold":      gorm.Expr("quantity_sold + ?", qty),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var perfume models.Perfume
	if err := r.db.WithContext(ctx).First(&perfume, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &perfume, nil
}

// ListActive returns the sellable catalog, newest first.
func (r *repository) ListActive(ctx context.Context) ([]models.Perfume, error) {
	var rows []models.Perfume
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
