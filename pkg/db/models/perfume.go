package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Perfume is one sellable size/variant in the catalog. quantity_available
// may go negative: a paid order is never blocked on a stock discrepancy.
type Perfume struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string          `gorm:"column:name;not null" json:"name"`
	Description       *string         `gorm:"column:description" json:"description,omitempty"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	QuantityAvailable int             `gorm:"column:quantity_available;not null;default:0" json:"quantity_available"`
	QuantitySold      int             `gorm:"column:quantity_sold;not null;default:0" json:"quantity_sold"`
	ImageURL          *string         `gorm:"column:image_url" json:"image_url,omitempty"`
	Status            string          `gorm:"column:status;not null;default:'active'" json:"status"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
