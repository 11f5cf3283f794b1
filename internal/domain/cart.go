package domain

import (
	"context"
	"time"
)

var (
	ErrCartNotFound    = &Error{Code: ENOTFOUND, Message: "Cart not found."}
	ErrCartEmpty       = &Error{Code: EINVALID, Message: "Cart is empty."}
	ErrInvalidCartLine = &Error{Code: EINVALID, Message: "Invalid product, variant, or size combination."}
)

// CartLine is a client-submitted cart entry. Only the identifiers and the
// requested quantity are trusted; everything else is recomputed server-side.
type CartLine struct {
	ProductID string
	VariantID string
	SizeID    string
	Quantity  int
}

// CartItem is a fully revalidated, priced snapshot of one cart line.
// Rows are replaced wholesale on every save so a stale client-submitted
// price can never persist.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	VariantID string
	SizeID    string
	StoreID   string

	SKU         string
	Name        string
	Image       string
	SizeLabel   string
	ProductSlug string
	VariantSlug string

	Quantity    int
	Price       float64 // effective unit price, discount already applied
	ShippingFee float64
	TotalPrice  float64 // Price*Quantity + ShippingFee
}

// Cart aggregates a user's validated line items.
// Invariant: Total == SubTotal + ShippingFees - applied coupon discount.
type Cart struct {
	ID       string
	UserID   string
	CouponID string // empty when no coupon is applied

	Items        []CartItem
	SubTotal     float64
	ShippingFees float64
	Total        float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartService revalidates and persists user carts. All pricing data is
// recomputed from live catalog and shipping configuration; the client cart
// is treated purely as a list of (product, variant, size, quantity) wishes.
type CartService interface {
	// SaveCart replaces the user's cart with the given lines, revalidated and
	// re-priced for the destination. The replacement is transactional.
	SaveCart(ctx context.Context, auth AuthContext, dest CountryInfo, lines []CartLine) (*Cart, error)

	// GetCart returns the user's persisted cart with items.
	GetCart(ctx context.Context, auth AuthContext) (*Cart, error)

	// RefreshCart re-prices the persisted cart items in place against live
	// stock, price, and shipping configuration, then recomputes the cart
	// aggregates, re-applying the cart coupon when still valid.
	RefreshCart(ctx context.Context, cartID string, dest CountryInfo) (*Cart, error)

	// EmptyCart deletes the user's cart and all of its items.
	EmptyCart(ctx context.Context, auth AuthContext) error
}
