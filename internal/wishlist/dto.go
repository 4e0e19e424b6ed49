package wishlist

import (
	"time"

	"github.com/chronomart/chronomart-backend/internal/catalog"
	"github.com/chronomart/chronomart-backend/pkg/db/models"
)

// WishlistItemDTO pairs a saved watch with when it was saved.
type WishlistItemDTO struct {
	Watch   catalog.WatchDTO `json:"watch"`
	SavedAt time.Time        `json:"saved_at"`
}

// WishlistDTO is the full wishlist view.
type WishlistDTO struct {
	Items     []WishlistItemDTO `json:"items"`
	ItemCount int               `json:"item_count"`
}

func toWishlistDTO(items []models.WishlistItem) WishlistDTO {
	dto := WishlistDTO{Items: make([]WishlistItemDTO, 0, len(items))}
	for _, item := range items {
		if item.Watch == nil {
			continue
		}
		dto.Items = append(dto.Items, WishlistItemDTO{
			Watch:   catalog.ToDTO(*item.Watch),
			SavedAt: item.CreatedAt,
		})
	}
	dto.ItemCount = len(dto.Items)
	return dto
}
