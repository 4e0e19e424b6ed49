package assistant

import (
	"strings"

	"github.com/google/uuid"
)

// ActionKind is the closed set of operations the assistant can perform.
type ActionKind string

const (
	ActionAddToCart          ActionKind = "add_to_cart"
	ActionUpdateCartQuantity ActionKind = "update_cart_quantity"
	ActionRemoveFromCart     ActionKind = "remove_from_cart"
	ActionClearCart          ActionKind = "clear_cart"
	ActionAddToWishlist      ActionKind = "add_to_wishlist"
	ActionRemoveFromWishlist ActionKind = "remove_from_wishlist"
	ActionClearWishlist      ActionKind = "clear_wishlist"
	ActionCreateOrder        ActionKind = "create_order"
	ActionCartToOrder        ActionKind = "cart_to_order"
	ActionWishlistToCart     ActionKind = "wishlist_to_cart"
	ActionWishlistToOrder    ActionKind = "wishlist_to_order"
	ActionUnknown            ActionKind = "unknown"
)

var allActionKinds = map[ActionKind]struct{}{
	ActionAddToCart:          {},
	ActionUpdateCartQuantity: {},
	ActionRemoveFromCart:     {},
	ActionClearCart:          {},
	ActionAddToWishlist:      {},
	ActionRemoveFromWishlist: {},
	ActionClearWishlist:      {},
	ActionCreateOrder:        {},
	ActionCartToOrder:        {},
	ActionWishlistToCart:     {},
	ActionWishlistToOrder:    {},
}

// ParseActionKind maps model output onto the closed enumeration.
// Anything outside the set comes back as ActionUnknown.
func ParseActionKind(raw string) ActionKind {
	kind := ActionKind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := allActionKinds[kind]; ok {
		return kind
	}
	return ActionUnknown
}

// RequiresItem reports whether the action targets a single watch and thus
// needs reference resolution before dispatch.
func (k ActionKind) RequiresItem() bool {
	switch k {
	case ActionAddToCart, ActionUpdateCartQuantity, ActionRemoveFromCart,
		ActionAddToWishlist, ActionRemoveFromWishlist:
		return true
	default:
		return false
	}
}

// IsGlobal reports whether the action operates on a whole collection.
func (k ActionKind) IsGlobal() bool {
	switch k {
	case ActionClearCart, ActionClearWishlist, ActionCreateOrder,
		ActionCartToOrder, ActionWishlistToCart, ActionWishlistToOrder:
		return true
	default:
		return false
	}
}

// OperationMode distinguishes accumulate-vs-overwrite cart adds.
type OperationMode string

const (
	ModeAdd OperationMode = "add"
	ModeSet OperationMode = "set"
)

// ParseOperationMode defaults anything unrecognized to ModeAdd.
func ParseOperationMode(raw string) OperationMode {
	if strings.ToLower(strings.TrimSpace(raw)) == string(ModeSet) {
		return ModeSet
	}
	return ModeAdd
}

// ContextItem is one recently shown watch handed to the extractor so the
// model can resolve references like "that one" against it.
type ContextItem struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Name  string    `json:"name" validate:"required"`
	Brand string    `json:"brand"`
}

// ResolvedIntent is the structured form of one user command. It lives only
// for the duration of a single assistant invocation and is never persisted.
type ResolvedIntent struct {
	Action          ActionKind
	Reference       string
	ResolvedWatchID *uuid.UUID
	SearchTerm      string
	Quantity        int
	Mode            OperationMode
}

// ActionRequest is the assistant endpoint payload.
type ActionRequest struct {
	Message string        `json:"message" validate:"required"`
	Context []ContextItem `json:"context" validate:"dive"`
}

// ActionResult summarizes the outcome of one dispatched action.
type ActionResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Action  ActionKind `json:"action"`
	WatchID *uuid.UUID `json:"watch_id,omitempty"`
	OrderID *uuid.UUID `json:"order_id,omitempty"`
}
