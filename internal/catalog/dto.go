package catalog

import (
	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	"github.com/chronomart/chronomart-backend/pkg/money"
)

// WatchDTO is the catalog listing shape returned to clients.
type WatchDTO struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Brand              string    `json:"brand"`
	Slug               string    `json:"slug"`
	Description        *string   `json:"description,omitempty"`
	PriceCents         int       `json:"price_cents"`
	Price              string    `json:"price"`
	OriginalPriceCents *int      `json:"original_price_cents,omitempty"`
	OnSale             bool      `json:"on_sale"`
	Stock              int       `json:"stock"`
	InStock            bool      `json:"in_stock"`
	Features           []string  `json:"features"`
	ImageURL           *string   `json:"image_url,omitempty"`
}

// WatchesPageDTO wraps a cursor-paginated watch listing.
type WatchesPageDTO struct {
	Items      []WatchDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
	Total      int        `json:"total"`
}

// StructuredSearchDTO wraps planner-driven search results with the plan's
// one-line rationale.
type StructuredSearchDTO struct {
	Items     []WatchDTO `json:"items"`
	Reasoning string     `json:"reasoning,omitempty"`
}

// ToDTO maps a watch row (with brand preloaded) to its API shape.
func ToDTO(w models.Watch) WatchDTO {
	brandName := ""
	if w.Brand != nil {
		brandName = w.Brand.Name
	}
	features := []string(w.Features)
	if features == nil {
		features = []string{}
	}
	return WatchDTO{
		ID:                 w.ID,
		Name:               w.Name,
		Brand:              brandName,
		Slug:               w.Slug,
		Description:        w.Description,
		PriceCents:         w.PriceCents,
		Price:              money.FormatCents(w.PriceCents),
		OriginalPriceCents: w.OriginalPriceCents,
		OnSale:             w.OnSale(),
		Stock:              w.Stock,
		InStock:            w.InStock(),
		Features:           features,
		ImageURL:           w.ImageURL,
	}
}
