package cart

import (
	"github.com/chronomart/chronomart-backend/internal/catalog"
	"github.com/chronomart/chronomart-backend/pkg/db/models"
	"github.com/chronomart/chronomart-backend/pkg/money"
)

// CartItemDTO is one cart line with its watch snapshot and line total.
type CartItemDTO struct {
	Watch          catalog.WatchDTO `json:"watch"`
	Quantity       int              `json:"quantity"`
	LineTotalCents int              `json:"line_total_cents"`
	LineTotal      string           `json:"line_total"`
}

// CartDTO is the full cart view with totals.
type CartDTO struct {
	Items      []CartItemDTO `json:"items"`
	ItemCount  int           `json:"item_count"`
	TotalCents int           `json:"total_cents"`
	Total      string        `json:"total"`
}

func toCartDTO(items []models.CartItem) CartDTO {
	dto := CartDTO{Items: make([]CartItemDTO, 0, len(items))}
	for _, item := range items {
		if item.Watch == nil {
			continue
		}
		lineCents := money.LineTotalCents(item.Watch.PriceCents, item.Quantity)
		dto.Items = append(dto.Items, CartItemDTO{
			Watch:          catalog.ToDTO(*item.Watch),
			Quantity:       item.Quantity,
			LineTotalCents: lineCents,
			LineTotal:      money.FormatCents(lineCents),
		})
		dto.ItemCount += item.Quantity
		dto.TotalCents += lineCents
	}
	dto.Total = money.FormatCents(dto.TotalCents)
	return dto
}
