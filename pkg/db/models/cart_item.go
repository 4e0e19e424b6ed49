package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in a user's cart. A user holds at most one
// line per watch; quantity stays at or above one.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:cart_items_user_id_idx;uniqueIndex:cart_items_user_watch_key"`
	WatchID   uuid.UUID `gorm:"column:watch_id;type:uuid;not null;uniqueIndex:cart_items_user_watch_key"`
	Watch     *Watch    `gorm:"foreignKey:WatchID"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
