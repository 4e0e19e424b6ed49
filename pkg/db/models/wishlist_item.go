package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a user to a saved watch. Presence-only, no quantity.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:wishlist_items_user_id_idx;uniqueIndex:wishlist_items_user_watch_key"`
	WatchID   uuid.UUID `gorm:"column:watch_id;type:uuid;not null;uniqueIndex:wishlist_items_user_watch_key"`
	Watch     *Watch    `gorm:"foreignKey:WatchID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
