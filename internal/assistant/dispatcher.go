package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chronomart/chronomart-backend/internal/cart"
	"github.com/chronomart/chronomart-backend/internal/orders"
	"github.com/chronomart/chronomart-backend/internal/wishlist"
	"github.com/chronomart/chronomart-backend/pkg/db/models"
	pkgerrors "github.com/chronomart/chronomart-backend/pkg/errors"
	"github.com/chronomart/chronomart-backend/pkg/money"
)

// Dispatcher executes a resolved intent against the storefront services.
type Dispatcher struct {
	cart     cart.Service
	wishlist wishlist.Service
	orders   orders.Service
}

// DispatcherParams bundles the services the dispatcher mutates through.
type DispatcherParams struct {
	CartService     cart.Service
	WishlistService wishlist.Service
	OrderService    orders.Service
}

// NewDispatcher builds a dispatcher with the required services.
func NewDispatcher(params DispatcherParams) (*Dispatcher, error) {
	if params.CartService == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if params.WishlistService == nil {
		return nil, fmt.Errorf("wishlist service is required")
	}
	if params.OrderService == nil {
		return nil, fmt.Errorf("order service is required")
	}
	return &Dispatcher{
		cart:     params.CartService,
		wishlist: params.WishlistService,
		orders:   params.OrderService,
	}, nil
}

// Dispatch runs the single store mutation an intent maps to. Expected
// storefront conditions (empty source collection, watch gone between resolve
// and dispatch) come back as an unsuccessful result rather than an error;
// only unexpected faults propagate.
func (d *Dispatcher) Dispatch(ctx context.Context, userID uuid.UUID, intent ResolvedIntent, watch *models.Watch) (ActionResult, error) {
	switch intent.Action {
	case ActionAddToCart:
		return d.addToCart(ctx, userID, intent, watch)
	case ActionUpdateCartQuantity:
		return d.updateCartQuantity(ctx, userID, intent, watch)
	case ActionRemoveFromCart:
		err := d.cart.RemoveItem(ctx, userID, watch.ID)
		return d.finish(intent, watch, nil, fmt.Sprintf("Removed %s from your cart.", watch.Name), err)
	case ActionClearCart:
		err := d.cart.Clear(ctx, userID)
		return d.finish(intent, nil, nil, "Cleared your cart.", err)
	case ActionAddToWishlist:
		err := d.wishlist.AddItem(ctx, userID, watch.ID)
		return d.finish(intent, watch, nil, fmt.Sprintf("Added %s to your wishlist.", watchLabel(watch)), err)
	case ActionRemoveFromWishlist:
		err := d.wishlist.RemoveItem(ctx, userID, watch.ID)
		return d.finish(intent, watch, nil, fmt.Sprintf("Removed %s from your wishlist.", watch.Name), err)
	case ActionClearWishlist:
		err := d.wishlist.Clear(ctx, userID)
		return d.finish(intent, nil, nil, "Cleared your wishlist.", err)
	case ActionCreateOrder, ActionCartToOrder:
		order, err := d.orders.CreateFromCart(ctx, userID)
		return d.finishOrder(intent, order, err)
	case ActionWishlistToOrder:
		order, err := d.orders.CreateFromWishlist(ctx, userID)
		return d.finishOrder(intent, order, err)
	case ActionWishlistToCart:
		moved, err := d.cart.MoveFromWishlist(ctx, userID)
		return d.finish(intent, nil, nil, fmt.Sprintf("Moved %d items from your wishlist to your cart.", moved), err)
	default:
		return ActionResult{}, pkgerrors.Newf(pkgerrors.CodeInternal, "unsupported action %q", intent.Action)
	}
}

func (d *Dispatcher) addToCart(ctx context.Context, userID uuid.UUID, intent ResolvedIntent, watch *models.Watch) (ActionResult, error) {
	var err error
	if intent.Mode == ModeSet {
		err = d.cart.SetQuantity(ctx, userID, watch.ID, intent.Quantity)
	} else {
		err = d.cart.AddItem(ctx, userID, watch.ID, intent.Quantity)
	}
	return d.finish(intent, watch, nil, fmt.Sprintf("Added %s to your cart.", watchLabel(watch)), err)
}

func (d *Dispatcher) updateCartQuantity(ctx context.Context, userID uuid.UUID, intent ResolvedIntent, watch *models.Watch) (ActionResult, error) {
	err := d.cart.SetQuantity(ctx, userID, watch.ID, intent.Quantity)
	message := fmt.Sprintf("Updated %s quantity to %d.", watch.Name, intent.Quantity)
	if intent.Quantity <= 0 {
		message = fmt.Sprintf("Removed %s from your cart.", watch.Name)
	}
	return d.finish(intent, watch, nil, message, err)
}

func (d *Dispatcher) finishOrder(intent ResolvedIntent, order orders.OrderDTO, err error) (ActionResult, error) {
	if err != nil {
		return d.failure(intent, err)
	}
	orderID := order.ID
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("Order placed successfully! Total: %s", money.FormatCents(order.TotalCents)),
		Action:  intent.Action,
		OrderID: &orderID,
	}, nil
}

func (d *Dispatcher) finish(intent ResolvedIntent, watch *models.Watch, orderID *uuid.UUID, message string, err error) (ActionResult, error) {
	if err != nil {
		return d.failure(intent, err)
	}
	result := ActionResult{
		Success: true,
		Message: message,
		Action:  intent.Action,
		OrderID: orderID,
	}
	if watch != nil {
		id := watch.ID
		result.WatchID = &id
	}
	return result, nil
}

func (d *Dispatcher) failure(intent ResolvedIntent, err error) (ActionResult, error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ActionResult{}, err
	}
	switch typed.Code() {
	case pkgerrors.CodeEmptyCollection:
		return ActionResult{
			Success: false,
			Message: emptyCollectionMessage(intent.Action),
			Action:  intent.Action,
		}, nil
	case pkgerrors.CodeNotFound:
		return ActionResult{
			Success: false,
			Message: "watch not found",
			Action:  intent.Action,
		}, nil
	default:
		return ActionResult{}, err
	}
}

func emptyCollectionMessage(kind ActionKind) string {
	switch kind {
	case ActionWishlistToCart, ActionWishlistToOrder:
		return "your wishlist is empty"
	default:
		return "your cart is empty"
	}
}

func watchLabel(watch *models.Watch) string {
	if watch.Brand != nil && watch.Brand.Name != "" {
		return fmt.Sprintf("%s by %s", watch.Name, watch.Brand.Name)
	}
	return watch.Name
}
