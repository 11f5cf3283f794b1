package domain

import "context"

// ShippingDetails is the fully resolved shipping quote for one product from
// one store to one destination country: the base fees for the product's fee
// method plus the delivery promise and return policy.
type ShippingDetails struct {
	ShippingFeeMethod ShippingFeeMethod
	ShippingService   string
	ShippingFee       float64 // base fee for the method (per item / per kg / fixed)
	ExtraShippingFee  float64 // per additional item, ITEM method only
	DeliveryTimeMin   int
	DeliveryTimeMax   int
	ReturnPolicy      string
	CountryName       string
	CountryCode       string
	IsFreeShipping    bool
}

// ShippingService resolves store shipping configuration for a destination.
type ShippingService interface {
	// GetShippingDetails resolves the quote for a product shipping from its
	// store to the destination. An unknown store is an error; an unknown
	// destination degrades to store defaults with free shipping disabled
	// (unless the product ships free to all countries).
	GetShippingDetails(ctx context.Context, product *Product, freeShipping *FreeShipping, store *Store, dest CountryInfo) (*ShippingDetails, error)

	// GetDeliveryDetails returns the delivery promise for a store shipping to
	// a country, falling back to international defaults when unset.
	GetDeliveryDetails(ctx context.Context, storeID, countryID string) (*DeliveryDetails, error)
}
