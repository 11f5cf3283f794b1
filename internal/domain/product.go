package domain

import "time"

// ShippingFeeMethod selects how a product line's shipping cost is computed.
type ShippingFeeMethod string

const (
	// FeeMethodItem charges a fee for the first unit plus a smaller fee for
	// each additional unit.
	FeeMethodItem ShippingFeeMethod = "ITEM"

	// FeeMethodWeight charges per kilogram of variant weight, per unit.
	FeeMethodWeight ShippingFeeMethod = "WEIGHT"

	// FeeMethodFixed charges a flat fee regardless of quantity or weight.
	FeeMethodFixed ShippingFeeMethod = "FIXED"
)

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found."}
	ErrStoreNotFound   = &Error{Code: ENOTFOUND, Message: "Store not found."}
)

// Product carries only the fields the pricing computation reads; the full
// catalog schema (categories, specs, reviews) lives with the catalog surface.
type Product struct {
	ID      string
	Slug    string
	Name    string
	StoreID string

	ShippingFeeMethod           ShippingFeeMethod
	FreeShippingForAllCountries bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FreeShipping is a product-level override that zeroes the shipping fee for
// the listed destination countries. A product without a FreeShipping row has
// no per-country exemption.
type FreeShipping struct {
	ID                 string
	ProductID          string
	EligibleCountryIDs []string
}

// Variant is one purchasable variation of a product (color, material, ...).
type Variant struct {
	ID        string
	ProductID string
	Slug      string
	SKU       string
	Name      string
	Image     string
	WeightKg  float64
}

// Size carries the sellable unit: price, percentage discount, and stock.
// Discount is applied at read time and never stored pre-applied.
type Size struct {
	ID        string
	VariantID string
	Label     string
	Price     float64
	Discount  float64 // percent, 0-100
	Stock     int
}
