package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	"github.com/chronomart/chronomart-backend/pkg/pagination"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx persists the order and its item snapshots inside the caller's transaction.
func (r *Repository) CreateTx(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if order == nil || order.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return tx.WithContext(ctx).Create(order).Error
}

// DecrementStockTx reserves qty units of a watch inside the caller's
// transaction. The guard on remaining stock makes the update a no-op when
// fewer than qty units are left, reported as ErrRecordNotFound.
func (r *Repository) DecrementStockTx(ctx context.Context, tx *gorm.DB, watchID uuid.UUID, qty int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if watchID == uuid.Nil || qty < 1 {
		return gorm.ErrInvalidValue
	}
	res := tx.WithContext(ctx).
		Model(&models.Watch{}).
		Where("id = ? AND stock >= ?", watchID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads an order with its items, scoped to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns a cursor-paginated page of the user's orders, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Order, string, int64, error) {
	if userID == uuid.Nil {
		return nil, "", 0, gorm.ErrInvalidValue
	}
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var rows []models.Order
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, "", 0, err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, "", 0, err
	}

	return rows, nextCursor, total, nil
}
