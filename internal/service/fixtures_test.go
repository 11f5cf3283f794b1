package service

import (
	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/repository"
)

var testLogger = zerolog.Nop()

var testCountry = domain.Country{ID: "country-us", Name: "United States", Code: "US"}

var testDest = domain.CountryInfo{Name: "United States", Code: "US", City: "Portland", Region: "OR"}

func testStore(id string) domain.Store {
	return domain.Store{
		ID:                                  id,
		Slug:                                id + "-slug",
		Name:                                "Store " + id,
		OwnerID:                             "seller-1",
		DefaultShippingService:              "Standard Post",
		DefaultShippingFeePerItem:           5,
		DefaultShippingFeeForAdditionalItem: 2,
		DefaultShippingFeePerKg:             3,
		DefaultShippingFeeFixed:             10,
		DefaultDeliveryTimeMin:              3,
		DefaultDeliveryTimeMax:              6,
		ReturnPolicy:                        "30 day returns",
	}
}

type productSpec struct {
	productID string
	storeID   string
	method    domain.ShippingFeeMethod
	price     float64
	discount  float64
	stock     int
	weightKg  float64
	freeAll   bool
}

func testPricingProduct(spec productSpec) repository.PricingProduct {
	return repository.PricingProduct{
		Product: domain.Product{
			ID:                          spec.productID,
			Slug:                        spec.productID + "-slug",
			Name:                        "Product " + spec.productID,
			StoreID:                     spec.storeID,
			ShippingFeeMethod:           spec.method,
			FreeShippingForAllCountries: spec.freeAll,
		},
		Store: testStore(spec.storeID),
		Variant: domain.Variant{
			ID:        spec.productID + "-v1",
			ProductID: spec.productID,
			Slug:      "default",
			SKU:       "SKU-" + spec.productID,
			Name:      "Default",
			Image:     "/img/" + spec.productID + ".jpg",
			WeightKg:  spec.weightKg,
		},
		Size: domain.Size{
			ID:        spec.productID + "-s1",
			VariantID: spec.productID + "-v1",
			Label:     "M",
			Price:     spec.price,
			Discount:  spec.discount,
			Stock:     spec.stock,
		},
	}
}

// catalog builds a GetPricingProductFunc over a set of products keyed by
// product ID. Variant and size IDs must match the fixture convention.
func catalog(specs ...productSpec) func(productID string) (repository.PricingProduct, bool) {
	byID := make(map[string]repository.PricingProduct, len(specs))
	for _, s := range specs {
		byID[s.productID] = testPricingProduct(s)
	}
	return func(productID string) (repository.PricingProduct, bool) {
		pp, ok := byID[productID]
		return pp, ok
	}
}

func userAuth(userID string) domain.AuthContext {
	return domain.AuthContext{UserID: userID, Role: domain.RoleUser}
}

func sellerAuth(userID string) domain.AuthContext {
	return domain.AuthContext{UserID: userID, Role: domain.RoleSeller}
}
