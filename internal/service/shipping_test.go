package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/repository"
)

// shippingFixture wires GetStoreByID and GetCountryByNameAndCode so the
// fixture store and the test country resolve.
func shippingFixture() (*mockQuerier, domain.ShippingService) {
	m := &mockQuerier{}
	m.GetStoreByIDFunc = func(ctx context.Context, id string) (domain.Store, error) {
		if id == "store-1" {
			return testStore(id), nil
		}
		return domain.Store{}, repository.ErrNotFound
	}
	m.GetCountryByNameAndCodeFunc = func(ctx context.Context, name, code string) (domain.Country, error) {
		if name == testCountry.Name && code == testCountry.Code {
			return testCountry, nil
		}
		return domain.Country{}, repository.ErrNotFound
	}
	return m, NewShippingService(m)
}

func TestShippingService_GetDeliveryDetails_StoreDefaults(t *testing.T) {
	_, svc := shippingFixture()

	details, err := svc.GetDeliveryDetails(context.Background(), "store-1", testCountry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standard Post", details.ShippingService)
	assert.Equal(t, 3, details.DeliveryTimeMin)
	assert.Equal(t, 6, details.DeliveryTimeMax)
}

func TestShippingService_GetDeliveryDetails_OverrideMergesFieldByField(t *testing.T) {
	m, svc := shippingFixture()
	m.GetShippingRateFunc = func(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error) {
		return domain.ShippingRate{
			StoreID:         storeID,
			CountryID:       countryID,
			ShippingService: "Express Courier",
			DeliveryTimeMin: 1,
			// DeliveryTimeMax unset: the store default survives.
		}, nil
	}

	details, err := svc.GetDeliveryDetails(context.Background(), "store-1", testCountry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Express Courier", details.ShippingService)
	assert.Equal(t, 1, details.DeliveryTimeMin)
	assert.Equal(t, 6, details.DeliveryTimeMax)
}

func TestShippingService_GetDeliveryDetails_InternationalFallbacks(t *testing.T) {
	m, svc := shippingFixture()
	m.GetStoreByIDFunc = func(ctx context.Context, id string) (domain.Store, error) {
		return domain.Store{ID: id, OwnerID: "seller-1"}, nil
	}

	details, err := svc.GetDeliveryDetails(context.Background(), "store-1", testCountry.ID)
	require.NoError(t, err)
	assert.Equal(t, "International Delivery", details.ShippingService)
	assert.Equal(t, 7, details.DeliveryTimeMin)
	assert.Equal(t, 30, details.DeliveryTimeMax)
}

func TestShippingService_GetDeliveryDetails_UnknownStore(t *testing.T) {
	_, svc := shippingFixture()

	_, err := svc.GetDeliveryDetails(context.Background(), "store-9", testCountry.ID)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestShippingService_GetShippingDetails_ItemMethod(t *testing.T) {
	_, svc := shippingFixture()
	pp := testPricingProduct(productSpec{productID: "p1", storeID: "store-1", method: domain.FeeMethodItem, price: 100, stock: 5})

	details, err := svc.GetShippingDetails(context.Background(), &pp.Product, nil, &pp.Store, testDest)
	require.NoError(t, err)
	assert.Equal(t, domain.FeeMethodItem, details.ShippingFeeMethod)
	assert.Equal(t, 5.0, details.ShippingFee)
	assert.Equal(t, 2.0, details.ExtraShippingFee)
	assert.Equal(t, "30 day returns", details.ReturnPolicy)
	assert.Equal(t, "US", details.CountryCode)
	assert.False(t, details.IsFreeShipping)
}

func TestShippingService_GetShippingDetails_WeightMethodOverride(t *testing.T) {
	m, svc := shippingFixture()
	m.GetShippingRateFunc = func(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error) {
		return domain.ShippingRate{StoreID: storeID, CountryID: countryID, ShippingFeePerKg: 8}, nil
	}
	pp := testPricingProduct(productSpec{productID: "p1", storeID: "store-1", method: domain.FeeMethodWeight, price: 100, stock: 5, weightKg: 2})

	details, err := svc.GetShippingDetails(context.Background(), &pp.Product, nil, &pp.Store, testDest)
	require.NoError(t, err)
	assert.Equal(t, 8.0, details.ShippingFee)
	assert.Zero(t, details.ExtraShippingFee)
}

func TestShippingService_GetShippingDetails_UnknownDestinationUsesDefaults(t *testing.T) {
	m, svc := shippingFixture()
	rateLookups := 0
	m.GetShippingRateFunc = func(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error) {
		rateLookups++
		return domain.ShippingRate{}, repository.ErrNotFound
	}
	pp := testPricingProduct(productSpec{productID: "p1", storeID: "store-1", method: domain.FeeMethodFixed, price: 100, stock: 5})
	free := &domain.FreeShipping{ProductID: "p1", EligibleCountryIDs: []string{testCountry.ID}}

	details, err := svc.GetShippingDetails(context.Background(), &pp.Product, free, &pp.Store, domain.CountryInfo{Name: "Atlantis", Code: "AT"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, details.ShippingFee)
	// Country-scoped free shipping cannot match an unknown destination, and
	// no override lookup happens without a country ID.
	assert.False(t, details.IsFreeShipping)
	assert.Zero(t, rateLookups)
}

func TestShippingService_GetShippingDetails_FreeShippingZeroesFees(t *testing.T) {
	_, svc := shippingFixture()
	pp := testPricingProduct(productSpec{productID: "p1", storeID: "store-1", method: domain.FeeMethodItem, price: 100, stock: 5, freeAll: true})

	details, err := svc.GetShippingDetails(context.Background(), &pp.Product, nil, &pp.Store, testDest)
	require.NoError(t, err)
	assert.True(t, details.IsFreeShipping)
	assert.Zero(t, details.ShippingFee)
	assert.Zero(t, details.ExtraShippingFee)
}

func TestShippingService_GetShippingDetails_FreeShippingCountryScoped(t *testing.T) {
	_, svc := shippingFixture()
	pp := testPricingProduct(productSpec{productID: "p1", storeID: "store-1", method: domain.FeeMethodFixed, price: 100, stock: 5})
	free := &domain.FreeShipping{ProductID: "p1", EligibleCountryIDs: []string{testCountry.ID}}

	details, err := svc.GetShippingDetails(context.Background(), &pp.Product, free, &pp.Store, testDest)
	require.NoError(t, err)
	assert.True(t, details.IsFreeShipping)
	assert.Zero(t, details.ShippingFee)
}
