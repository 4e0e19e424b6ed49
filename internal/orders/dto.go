package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/pkg/db/models"
	"github.com/chronomart/chronomart-backend/pkg/enums"
	"github.com/chronomart/chronomart-backend/pkg/money"
)

// OrderItemDTO is a purchased line snapshot.
type OrderItemDTO struct {
	WatchID        uuid.UUID `json:"watch_id"`
	WatchName      string    `json:"watch_name"`
	BrandName      string    `json:"brand_name"`
	UnitPriceCents int       `json:"unit_price_cents"`
	UnitPrice      string    `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int       `json:"line_total_cents"`
	LineTotal      string    `json:"line_total"`
}

// OrderDTO is the order view returned to clients.
type OrderDTO struct {
	ID         uuid.UUID         `json:"id"`
	Status     enums.OrderStatus `json:"status"`
	Source     enums.OrderSource `json:"source"`
	TotalCents int               `json:"total_cents"`
	Total      string            `json:"total"`
	Items      []OrderItemDTO    `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
}

// OrdersPageDTO wraps a cursor-paginated order listing.
type OrdersPageDTO struct {
	Items      []OrderDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
	Total      int        `json:"total"`
}

func toOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		lineCents := money.LineTotalCents(item.UnitPriceCents, item.Quantity)
		items = append(items, OrderItemDTO{
			WatchID:        item.WatchID,
			WatchName:      item.WatchName,
			BrandName:      item.BrandName,
			UnitPriceCents: item.UnitPriceCents,
			UnitPrice:      money.FormatCents(item.UnitPriceCents),
			Quantity:       item.Quantity,
			LineTotalCents: lineCents,
			LineTotal:      money.FormatCents(lineCents),
		})
	}
	return OrderDTO{
		ID:         order.ID,
		Status:     order.Status,
		Source:     order.Source,
		TotalCents: order.TotalCents,
		Total:      money.FormatCents(order.TotalCents),
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}
