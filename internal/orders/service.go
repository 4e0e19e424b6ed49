package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronomart/chronomart-backend/internal/cart"
	"github.com/chronomart/chronomart-backend/internal/wishlist"
	"github.com/chronomart/chronomart-backend/pkg/db/models"
	"github.com/chronomart/chronomart-backend/pkg/enums"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
	"github.com/chronomart/chronomart-backend/pkg/money"
	"github.com/chronomart/chronomart-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	DB           txRunner
	OrderRepo    *Repository
	CartRepo     *cart.Repository
	WishlistRepo *wishlist.Repository
	Outbox       eventEmitter
}

// Service exposes order creation and retrieval.
type Service interface {
	CreateFromCart(ctx context.Context, userID uuid.UUID) (OrderDTO, error)
	CreateFromWishlist(ctx context.Context, userID uuid.UUID) (OrderDTO, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrdersPageDTO, error)
}

type service struct {
	db           txRunner
	orderRepo    *Repository
	cartRepo     *cart.Repository
	wishlistRepo *wishlist.Repository
	outbox       eventEmitter
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outbox service is required")
	}
	return &service{
		db:           params.DB,
		orderRepo:    params.OrderRepo,
		cartRepo:     params.CartRepo,
		wishlistRepo: params.WishlistRepo,
		outbox:       params.Outbox,
	}, nil
}

type sourceLine struct {
	watch    *models.Watch
	quantity int
}

// CreateFromCart snapshots the cart into an order, clears the cart, and
// queues the order event, all in one transaction.
func (s *service) CreateFromCart(ctx context.Context, userID uuid.UUID) (OrderDTO, error) {
	if userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var created models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.cartRepo.ListItemsTx(ctx, tx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
		}
		lines := make([]sourceLine, 0, len(items))
		for _, item := range items {
			lines = append(lines, sourceLine{watch: item.Watch, quantity: item.Quantity})
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCollection, "cart is empty")
		}

		order, err := s.buildOrder(userID, enums.OrderSourceCart, lines)
		if err != nil {
			return err
		}
		if err := s.reserveStock(ctx, tx, lines); err != nil {
			return err
		}
		if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		if err := s.emitCreated(ctx, tx, order); err != nil {
			return err
		}
		created = *order
		return nil
	})
	if err != nil {
		return OrderDTO{}, err
	}
	return toOrderDTO(created), nil
}

// CreateFromWishlist orders one of each saved watch, clears the wishlist,
// and queues the order event, all in one transaction.
func (s *service) CreateFromWishlist(ctx context.Context, userID uuid.UUID) (OrderDTO, error) {
	if userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var created models.Order
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		items, err := s.wishlistRepo.ListItemsTx(ctx, tx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist items")
		}
		lines := make([]sourceLine, 0, len(items))
		for _, item := range items {
			lines = append(lines, sourceLine{watch: item.Watch, quantity: 1})
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCollection, "wishlist is empty")
		}

		order, err := s.buildOrder(userID, enums.OrderSourceWishlist, lines)
		if err != nil {
			return err
		}
		if err := s.reserveStock(ctx, tx, lines); err != nil {
			return err
		}
		if err := s.orderRepo.CreateTx(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := s.wishlistRepo.ClearTx(ctx, tx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
		}
		if err := s.emitCreated(ctx, tx, order); err != nil {
			return err
		}
		created = *order
		return nil
	})
	if err != nil {
		return OrderDTO{}, err
	}
	return toOrderDTO(created), nil
}

// GetOrder loads one of the user's orders.
func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id are required")
	}
	order, err := s.orderRepo.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toOrderDTO(*order), nil
}

// ListOrders returns the user's order history, newest first.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrdersPageDTO, error) {
	if userID == uuid.Nil {
		return OrdersPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, nextCursor, total, err := s.orderRepo.List(ctx, userID, cursor, limit)
	if err != nil {
		return OrdersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	items := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toOrderDTO(row))
	}
	return OrdersPageDTO{Items: items, NextCursor: nextCursor, Total: int(total)}, nil
}

func (s *service) buildOrder(userID uuid.UUID, source enums.OrderSource, lines []sourceLine) (*models.Order, error) {
	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.OrderStatusPending,
		Source: source,
	}
	for _, line := range lines {
		if line.watch == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "source line missing watch")
		}
		brandName := ""
		if line.watch.Brand != nil {
			brandName = line.watch.Brand.Name
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			WatchID:        line.watch.ID,
			WatchName:      line.watch.Name,
			BrandName:      brandName,
			UnitPriceCents: line.watch.PriceCents,
			Quantity:       line.quantity,
		})
		order.TotalCents += money.LineTotalCents(line.watch.PriceCents, line.quantity)
	}
	return order, nil
}

// reserveStock decrements stock for every line inside the order transaction.
// A line that can no longer be covered aborts the whole order.
func (s *service) reserveStock(ctx context.Context, tx *gorm.DB, lines []sourceLine) error {
	for _, line := range lines {
		err := s.orderRepo.DecrementStockTx(ctx, tx, line.watch.ID, line.quantity)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("insufficient stock for %s", line.watch.Name))
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
		}
	}
	return nil
}

type orderCreatedPayload struct {
	OrderID    uuid.UUID         `json:"orderId"`
	UserID     uuid.UUID         `json:"userId"`
	Source     enums.OrderSource `json:"source"`
	TotalCents int               `json:"totalCents"`
	ItemCount  int               `json:"itemCount"`
}

func (s *service) emitCreated(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	event := outbox.DomainEvent{
		EventType:     enums.OutboxEventOrderCreated,
		AggregateType: enums.OutboxAggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: order.UserID},
		Version:       1,
		Data: orderCreatedPayload{
			OrderID:    order.ID,
			UserID:     order.UserID,
			Source:     order.Source,
			TotalCents: order.TotalCents,
			ItemCount:  len(order.Items),
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue order event")
	}
	return nil
}
