package domain

import (
	"context"
	"time"
)

// OrderStatus tracks fulfilment of an order, order group, or order item.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "OutForDelivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
	OrderStatusFailed         OrderStatus = "Failed"
	OrderStatusRefunded       OrderStatus = "Refunded"
)

var (
	ErrOrderNotFound      = &Error{Code: ENOTFOUND, Message: "Order not found."}
	ErrOrderGroupNotFound = &Error{Code: ENOTFOUND, Message: "Order group not found."}
	ErrOrderItemNotFound  = &Error{Code: ENOTFOUND, Message: "Order item not found."}
)

// Valid reports whether s is a recognized order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusOutForDelivery, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusFailed, OrderStatusRefunded:
		return true
	}
	return false
}

// OrderItem is the immutable priced snapshot of one line at checkout time.
type OrderItem struct {
	ID           string
	OrderGroupID string
	ProductID    string
	VariantID    string
	SizeID       string

	SKU         string
	Name        string
	Image       string
	SizeLabel   string
	ProductSlug string
	VariantSlug string

	Quantity    int
	Price       float64
	ShippingFee float64
	TotalPrice  float64
	Status      OrderStatus
}

// OrderGroup partitions an order's items by seller store. Each group carries
// its own totals, fulfilment status, and delivery promise; a coupon discounts
// only the group whose store issued it.
type OrderGroup struct {
	ID      string
	OrderID string
	StoreID string
	Status  OrderStatus

	Items        []OrderItem
	SubTotal     float64
	ShippingFees float64
	Total        float64
	CouponID     string

	ShippingService string
	DeliveryTimeMin int
	DeliveryTimeMax int
}

// Order is the checkout root. Monetary fields are fixed once computed at
// creation and never recomputed after payment.
type Order struct {
	ID        string
	UserID    string
	CountryID string

	Groups       []OrderGroup
	SubTotal     float64
	ShippingFees float64
	Total        float64

	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckoutService converts a cart into a persisted order.
type CheckoutService interface {
	// PlaceOrder revalidates and re-prices every cart line, groups the lines
	// by store, applies the cart coupon to its store's group only, and
	// persists the order with its groups and items in a single transaction.
	// On any failure nothing is persisted.
	PlaceOrder(ctx context.Context, auth AuthContext, cartID, countryID string) (*Order, error)
}

// OrderService reads orders and mutates fulfilment status.
type OrderService interface {
	// GetOrder returns the order with groups sorted by total descending.
	// Only the order's owner may read it.
	GetOrder(ctx context.Context, auth AuthContext, orderID string) (*Order, error)

	// UpdateGroupStatus sets an order group's fulfilment status.
	// Seller-only; the seller must own the group's store.
	UpdateGroupStatus(ctx context.Context, auth AuthContext, storeID, groupID string, status OrderStatus) (OrderStatus, error)

	// UpdateItemStatus sets a single order item's fulfilment status.
	// Seller-only; the seller must own the item's store.
	UpdateItemStatus(ctx context.Context, auth AuthContext, storeID, itemID string, status OrderStatus) (OrderStatus, error)
}
