// Package pricing contains the pure cart-pricing computation: shipping-rate
// resolution, shipping-fee calculation, free-shipping eligibility, and
// per-line pricing. Nothing here touches the database; callers fetch the
// inputs and the functions are deterministic over them.
package pricing

import (
	"github.com/bazario/bazario/internal/domain"
)

// Rate is a fully resolved shipping configuration for one (store, country)
// pair: every field populated, overrides already merged over store defaults.
type Rate struct {
	ShippingService      string
	FeePerItem           float64
	FeeForAdditionalItem float64
	FeePerKg             float64
	FeeFixed             float64
	DeliveryTimeMin      int
	DeliveryTimeMax      int
	ReturnPolicy         string
}

// ResolveRate merges a country-specific override into the store's defaults,
// field by field. A nil override means no row exists for the pair and the
// defaults are used as-is. Zero-valued override fields are treated as unset.
func ResolveRate(store *domain.Store, override *domain.ShippingRate) Rate {
	rate := Rate{
		ShippingService:      store.DefaultShippingService,
		FeePerItem:           store.DefaultShippingFeePerItem,
		FeeForAdditionalItem: store.DefaultShippingFeeForAdditionalItem,
		FeePerKg:             store.DefaultShippingFeePerKg,
		FeeFixed:             store.DefaultShippingFeeFixed,
		DeliveryTimeMin:      store.DefaultDeliveryTimeMin,
		DeliveryTimeMax:      store.DefaultDeliveryTimeMax,
		ReturnPolicy:         store.ReturnPolicy,
	}
	if override == nil {
		return rate
	}

	if override.ShippingService != "" {
		rate.ShippingService = override.ShippingService
	}
	if override.ShippingFeePerItem != 0 {
		rate.FeePerItem = override.ShippingFeePerItem
	}
	if override.ShippingFeeForAdditionalItem != 0 {
		rate.FeeForAdditionalItem = override.ShippingFeeForAdditionalItem
	}
	if override.ShippingFeePerKg != 0 {
		rate.FeePerKg = override.ShippingFeePerKg
	}
	if override.ShippingFeeFixed != 0 {
		rate.FeeFixed = override.ShippingFeeFixed
	}
	if override.DeliveryTimeMin != 0 {
		rate.DeliveryTimeMin = override.DeliveryTimeMin
	}
	if override.DeliveryTimeMax != 0 {
		rate.DeliveryTimeMax = override.DeliveryTimeMax
	}
	if override.ReturnPolicy != "" {
		rate.ReturnPolicy = override.ReturnPolicy
	}
	return rate
}

// FreeShippingEligible reports whether a line ships free to the destination.
// The all-countries flag wins unconditionally; otherwise the destination must
// appear in the product's eligible-country list.
func FreeShippingEligible(allCountries bool, eligibleCountryIDs []string, countryID string) bool {
	if allCountries {
		return true
	}
	for _, id := range eligibleCountryIDs {
		if id == countryID {
			return true
		}
	}
	return false
}

// Fee computes the shipping fee for one line. Free shipping always wins.
// Unrecognized methods compute a fee of 0.
func Fee(rate Rate, method domain.ShippingFeeMethod, quantity int, weightKg float64, freeShipping bool) float64 {
	if freeShipping || quantity <= 0 {
		return 0
	}

	switch method {
	case domain.FeeMethodItem:
		return rate.FeePerItem + rate.FeeForAdditionalItem*float64(quantity-1)
	case domain.FeeMethodWeight:
		return rate.FeePerKg * weightKg * float64(quantity)
	case domain.FeeMethodFixed:
		return rate.FeeFixed
	default:
		return 0
	}
}

// EffectiveUnitPrice applies the percentage discount to the list price.
// Discount is clamped to [0, 100]; a zero discount returns the list price.
func EffectiveUnitPrice(price, discount float64) float64 {
	if discount <= 0 {
		return price
	}
	if discount > 100 {
		discount = 100
	}
	return price - price*(discount/100)
}

// ClampQuantity bounds a requested quantity to available stock. The clamp is
// silent: requesting more than stock never fails, it reduces the quantity,
// so callers must read back the result rather than assume the request was
// honored. Negative requests clamp to zero.
func ClampQuantity(requested, stock int) int {
	if requested < 0 {
		requested = 0
	}
	if requested > stock {
		return stock
	}
	return requested
}

// LineTotal is the full price of one line: discounted units plus its
// shipping fee.
func LineTotal(unitPrice float64, quantity int, shippingFee float64) float64 {
	return unitPrice*float64(quantity) + shippingFee
}
