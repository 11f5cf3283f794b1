package domain

import "time"

// Store is a seller-owned storefront. The default* fields are the shipping
// configuration used for any destination without a country-specific override.
type Store struct {
	ID      string
	Slug    string
	Name    string
	OwnerID string

	DefaultShippingService              string
	DefaultShippingFeePerItem           float64
	DefaultShippingFeeForAdditionalItem float64
	DefaultShippingFeePerKg             float64
	DefaultShippingFeeFixed             float64
	DefaultDeliveryTimeMin              int
	DefaultDeliveryTimeMax              int
	ReturnPolicy                        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShippingRate is an optional per-(store, country) override of the store's
// shipping defaults. At most one row exists per (StoreID, CountryID) pair.
// Zero-valued fields fall back to the store default field-by-field.
type ShippingRate struct {
	ID        string
	StoreID   string
	CountryID string

	ShippingService              string
	ShippingFeePerItem           float64
	ShippingFeeForAdditionalItem float64
	ShippingFeePerKg             float64
	ShippingFeeFixed             float64
	DeliveryTimeMin              int
	DeliveryTimeMax              int
	ReturnPolicy                 string
}

// DeliveryDetails is the fulfilment promise for one store shipping to one
// destination country.
type DeliveryDetails struct {
	ShippingService string
	DeliveryTimeMin int
	DeliveryTimeMax int
}
