package domain

import (
	"context"
	"time"
)

var (
	ErrCouponNotFound       = &Error{Code: ENOTFOUND, Message: "Invalid coupon code."}
	ErrCouponInactive       = &Error{Code: EINVALID, Message: "Coupon is expired or not yet active."}
	ErrCouponAlreadyApplied = &Error{Code: EINVALID, Message: "A coupon is already applied to this cart."}
	ErrCouponNotApplicable  = &Error{Code: EINVALID, Message: "No items in the cart belong to the store associated with this coupon."}
	ErrNoCouponApplied      = &Error{Code: EINVALID, Message: "No coupon is applied to this cart."}
)

// Coupon is a time-boxed, store-scoped percentage discount. It applies only
// to cart lines from its own store, and at most one coupon is attached to a
// cart at a time.
type Coupon struct {
	ID       string
	StoreID  string
	Code     string
	Discount float64 // percent, 1-99
	StartsAt time.Time
	EndsAt   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveAt reports whether the coupon's validity window covers now.
func (c Coupon) ActiveAt(now time.Time) bool {
	return !now.Before(c.StartsAt) && !now.After(c.EndsAt)
}

// CouponApplication describes the result of attaching a coupon to a cart.
type CouponApplication struct {
	Cart       *Cart
	Discount   float64
	StoreName  string
	CouponCode string
}

// CouponService manages seller coupons and their application to carts.
// Seller operations verify both the seller role and store ownership.
type CouponService interface {
	// UpsertCoupon creates or updates a coupon for the seller's store.
	// Duplicate codes within a store are rejected.
	UpsertCoupon(ctx context.Context, auth AuthContext, storeSlug string, coupon Coupon) (*Coupon, error)

	// ListStoreCoupons returns all coupons for the seller's store.
	ListStoreCoupons(ctx context.Context, auth AuthContext, storeSlug string) ([]Coupon, error)

	// GetCoupon returns a coupon by ID.
	GetCoupon(ctx context.Context, couponID string) (*Coupon, error)

	// DeleteCoupon removes a coupon from the seller's store.
	DeleteCoupon(ctx context.Context, auth AuthContext, storeSlug, couponID string) error

	// ApplyCoupon attaches a coupon to a cart and discounts the cart total by
	// the coupon percentage of the matching store's lines (price*qty plus
	// shipping). The discount adjusts the aggregate only; line items keep
	// their original prices. Any precondition failure leaves the cart
	// unmodified.
	ApplyCoupon(ctx context.Context, cartID, code string) (*CouponApplication, error)

	// RemoveCoupon detaches the cart's coupon and restores the pre-discount
	// total.
	RemoveCoupon(ctx context.Context, cartID string) (*Cart, error)
}
