package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/pkg/enums"
)

// Order is an immutable purchase record with item snapshots.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Source     enums.OrderSource `gorm:"column:source;not null"`
	TotalCents int               `gorm:"column:total_cents;not null"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
