package enums

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderSource records which collection the order was created from.
type OrderSource string

const (
	OrderSourceCart     OrderSource = "cart"
	OrderSourceWishlist OrderSource = "wishlist"
)

// OutboxEventType enumerates events emitted through the outbox.
type OutboxEventType string

const (
	OutboxEventOrderCreated OutboxEventType = "order.created"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateOrder OutboxAggregateType = "order"
)
