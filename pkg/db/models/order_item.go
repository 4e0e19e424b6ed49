package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots a watch at purchase time. Name, brand and price
// are copied so later catalog edits never rewrite order history.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	WatchID        uuid.UUID `gorm:"column:watch_id;type:uuid;not null"`
	WatchName      string    `gorm:"column:watch_name;not null"`
	BrandName      string    `gorm:"column:brand_name;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
