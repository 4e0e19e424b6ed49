package catalog

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	"github.com/chronomart/chronomart-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an active watch with its brand.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Watch, error) {
	if id == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}
	var watch models.Watch
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("is_active = ?", true).
		First(&watch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

// FindBySlug loads an active watch by its URL slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Watch, error) {
	var watch models.Watch
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("is_active = ? AND slug = ?", true, strings.TrimSpace(slug)).
		First(&watch).Error
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

// CheapestInStock returns the lowest-priced purchasable watch.
func (r *Repository) CheapestInStock(ctx context.Context) (*models.Watch, error) {
	return r.firstByPrice(ctx, "price_cents ASC")
}

// MostExpensiveInStock returns the highest-priced purchasable watch.
func (r *Repository) MostExpensiveInStock(ctx context.Context) (*models.Watch, error) {
	return r.firstByPrice(ctx, "price_cents DESC")
}

func (r *Repository) firstByPrice(ctx context.Context, order string) (*models.Watch, error) {
	var watch models.Watch
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("is_active = ? AND stock > 0", true).
		Order(order).
		Order("id ASC").
		First(&watch).Error
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

// FuzzyFind returns the first in-stock watch matching the term against the
// watch name, the brand name, or the watch name with hyphens and whitespace
// stripped. "f91w" matches "F-91W" and "submarinerdate" matches
// "Submariner Date" through the stripped comparison.
func (r *Repository) FuzzyFind(ctx context.Context, term string) (*models.Watch, error) {
	normalized := strings.ToLower(strings.TrimSpace(term))
	if normalized == "" {
		return nil, gorm.ErrRecordNotFound
	}
	needle := "%" + normalized + "%"
	stripped := "%" + strings.Map(func(c rune) rune {
		if c == '-' || unicode.IsSpace(c) {
			return -1
		}
		return c
	}, normalized) + "%"

	var watch models.Watch
	err := r.db.WithContext(ctx).
		Model(&models.Watch{}).
		Joins("JOIN brands ON brands.id = watches.brand_id").
		Where("watches.is_active = ? AND watches.stock > 0", true).
		Where(
			"LOWER(watches.name) LIKE ? OR LOWER(brands.name) LIKE ? OR REPLACE(REPLACE(LOWER(watches.name), '-', ''), ' ', '') LIKE ?",
			needle, needle, stripped,
		).
		Order("watches.name ASC").
		Order("watches.id ASC").
		Preload("Brand").
		First(&watch).Error
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

// Search lists active watches matching the preprocessed query against name,
// description, or brand. Discount intent restricts results to marked-down
// watches (price below original) and orders cheapest first, falling back to
// the unrestricted cheapest-first listing when nothing is marked down; luxury
// intent orders most expensive first. Out-of-stock watches stay visible in
// browse results.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Watch, error) {
	parsed := parseSearchQuery(query)

	watches, err := r.runSearch(ctx, parsed, parsed.discountIntent, limit)
	if err != nil {
		return nil, err
	}
	if parsed.discountIntent && len(watches) == 0 {
		return r.runSearch(ctx, parsed, false, limit)
	}
	return watches, nil
}

func (r *Repository) runSearch(ctx context.Context, parsed searchQuery, onSaleOnly bool, limit int) ([]models.Watch, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Watch{}).
		Joins("JOIN brands ON brands.id = watches.brand_id").
		Where("watches.is_active = ?", true).
		Preload("Brand").
		Limit(pagination.NormalizeLimit(limit))

	if parsed.term != "" {
		needle := "%" + parsed.term + "%"
		q = q.Where(
			"LOWER(watches.name) LIKE ? OR LOWER(watches.description) LIKE ? OR LOWER(brands.name) LIKE ?",
			needle, needle, needle,
		)
	}
	if onSaleOnly {
		q = q.Where("watches.original_price_cents IS NOT NULL AND watches.price_cents < watches.original_price_cents")
	}

	switch {
	case parsed.luxuryIntent:
		q = q.Order("watches.price_cents DESC")
	case parsed.discountIntent:
		q = q.Order("watches.price_cents ASC")
	default:
		q = q.Order("watches.name ASC")
	}
	q = q.Order("watches.id ASC")

	var watches []models.Watch
	if err := q.Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

// SearchByPlan executes a planner-produced query. Stock availability is
// always implied; the plan only narrows and orders within purchasable
// watches.
func (r *Repository) SearchByPlan(ctx context.Context, plan SearchPlan, limit int) ([]models.Watch, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Watch{}).
		Joins("JOIN brands ON brands.id = watches.brand_id").
		Where("watches.is_active = ? AND watches.stock > 0", true).
		Preload("Brand").
		Limit(pagination.NormalizeLimit(limit))

	if term := strings.ToLower(strings.TrimSpace(plan.Term)); term != "" {
		needle := "%" + term + "%"
		q = q.Where(
			"LOWER(watches.name) LIKE ? OR LOWER(watches.description) LIKE ? OR LOWER(brands.name) LIKE ?",
			needle, needle, needle,
		)
	}
	if brand := strings.ToLower(strings.TrimSpace(plan.Brand)); brand != "" {
		q = q.Where("LOWER(brands.name) LIKE ?", "%"+brand+"%")
	}
	if plan.MinPriceCents != nil {
		q = q.Where("watches.price_cents >= ?", *plan.MinPriceCents)
	}
	if plan.MaxPriceCents != nil {
		q = q.Where("watches.price_cents <= ?", *plan.MaxPriceCents)
	}
	if plan.OnSaleOnly {
		q = q.Where("watches.original_price_cents IS NOT NULL AND watches.price_cents < watches.original_price_cents")
	}

	switch plan.Sort {
	case SortPriceAsc:
		q = q.Order("watches.price_cents ASC")
	case SortPriceDesc:
		q = q.Order("watches.price_cents DESC")
	default:
		q = q.Order("watches.created_at DESC")
	}
	q = q.Order("watches.id ASC")

	var watches []models.Watch
	if err := q.Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

// List returns a cursor-paginated page of active watches, newest first.
func (r *Repository) List(ctx context.Context, cursor string, limit int) ([]models.Watch, string, int64, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Watch{}).
		Where("is_active = ?", true).
		Preload("Brand")

	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var watches []models.Watch
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&watches).Error; err != nil {
		return nil, "", 0, err
	}

	nextCursor := ""
	if len(watches) > normalizedLimit {
		watches = watches[:normalizedLimit]
		last := watches[len(watches)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Watch{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, "", 0, err
	}

	return watches, nextCursor, total, nil
}

// ListBrands returns all brands ordered by name.
func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error
	return brands, err
}
