package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// AddItem inserts a cart line or increments the existing one atomically.
func (r *Repository) AddItem(ctx context.Context, userID, watchID uuid.UUID, quantity int) error {
	return r.AddItemTx(ctx, nil, userID, watchID, quantity)
}

// AddItemTx is AddItem inside the caller's transaction.
func (r *Repository) AddItemTx(ctx context.Context, tx *gorm.DB, userID, watchID uuid.UUID, quantity int) error {
	if userID == uuid.Nil || watchID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if quantity < 1 {
		return gorm.ErrInvalidValue
	}

	return r.conn(tx).WithContext(ctx).Exec(`
INSERT INTO cart_items (id, user_id, watch_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, watch_id)
DO UPDATE SET quantity = cart_items.quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP`,
		uuid.New(), userID, watchID, quantity,
	).Error
}

// SetQuantity overwrites a line's quantity. Zero or below deletes the line.
func (r *Repository) SetQuantity(ctx context.Context, userID, watchID uuid.UUID, quantity int) error {
	if userID == uuid.Nil || watchID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, watchID)
	}

	return r.db.WithContext(ctx).Exec(`
INSERT INTO cart_items (id, user_id, watch_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, watch_id)
DO UPDATE SET quantity = excluded.quantity, updated_at = CURRENT_TIMESTAMP`,
		uuid.New(), userID, watchID, quantity,
	).Error
}

// RemoveItem deletes the user's line for a watch if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, watchID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND watch_id = ?", userID, watchID).
		Delete(&models.CartItem{}).
		Error
}

// ListItems returns all cart lines for a user with watches preloaded,
// oldest line first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Watch.Brand").
		Preload("Watch").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// ListItemsTx is ListItems inside the caller's transaction.
func (r *Repository) ListItemsTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.conn(tx).WithContext(ctx).
		Preload("Watch.Brand").
		Preload("Watch").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Clear removes every cart line for the user.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.ClearTx(ctx, nil, userID)
}

// ClearTx removes every cart line for the user inside the caller's transaction.
func (r *Repository) ClearTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).
		Error
}
