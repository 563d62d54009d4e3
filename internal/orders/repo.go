package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/maisonarlo/storefront-backend/pkg/db/models"
)

// Repository persists order rows. The pipeline only ever appends; status
// transitions are back-office concerns handled elsewhere.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}
