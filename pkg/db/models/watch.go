package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Watch represents a catalog listing.
type Watch struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BrandID            uuid.UUID      `gorm:"column:brand_id;type:uuid;not null;index:watches_brand_id_idx"`
	Brand              *Brand         `gorm:"foreignKey:BrandID"`
	Name               string         `gorm:"column:name;not null"`
	Slug               string         `gorm:"column:slug;not null;uniqueIndex"`
	Description        *string        `gorm:"column:description"`
	PriceCents         int            `gorm:"column:price_cents;not null"`
	OriginalPriceCents *int           `gorm:"column:original_price_cents"`
	Stock              int            `gorm:"column:stock;not null;default:0"`
	Features           pq.StringArray `gorm:"column:features;type:text[];not null;default:ARRAY[]::text[]"`
	ImageURL           *string        `gorm:"column:image_url"`
	IsActive           bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// OnSale reports whether the watch has a markdown price.
func (w Watch) OnSale() bool {
	return w.OriginalPriceCents != nil && w.PriceCents < *w.OriginalPriceCents
}

// InStock reports whether the watch can be purchased.
func (w Watch) InStock() bool {
	return w.Stock > 0
}
