package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID, watchID uuid.UUID) error {
	if userID == uuid.Nil || watchID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (id, user_id, watch_id, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP) ON CONFLICT (user_id, watch_id) DO NOTHING`,
			uuid.New(), userID, watchID).
		Error
}

// RemoveItem deletes the user-watch entry if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND watch_id = ?", userID, watchID).
		Delete(&models.WishlistItem{}).
		Error
}

// ListItems returns the user's saved watches, oldest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	return r.ListItemsTx(ctx, nil, userID)
}

// ListItemsTx is ListItems inside the caller's transaction.
func (r *Repository) ListItemsTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.conn(tx).WithContext(ctx).
		Preload("Watch.Brand").
		Preload("Watch").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Clear removes every wishlist entry for the user.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.ClearTx(ctx, nil, userID)
}

// ClearTx removes every wishlist entry for the user inside the caller's transaction.
func (r *Repository) ClearTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.WishlistItem{}).
		Error
}
