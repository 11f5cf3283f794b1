package service

import (
	"context"
	"errors"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/pricing"
	"github.com/bazario/bazario/internal/repository"
)

// Fallbacks used when neither a shipping rate nor the store defaults carry
// a delivery promise.
const (
	fallbackShippingService = "International Delivery"
	fallbackDeliveryTimeMin = 7
	fallbackDeliveryTimeMax = 30
)

// shippingService implements domain.ShippingService.
type shippingService struct {
	repo repository.Querier
}

// NewShippingService creates a new domain.ShippingService instance.
func NewShippingService(repo repository.Querier) domain.ShippingService {
	return &shippingService{repo: repo}
}

// resolveRate loads the (store, country) override, when one exists, and
// merges it over the store defaults. An empty countryID or a missing
// override resolves to the defaults.
func (s *shippingService) resolveRate(ctx context.Context, store *domain.Store, countryID string) (pricing.Rate, error) {
	if countryID == "" {
		return pricing.ResolveRate(store, nil), nil
	}

	override, err := s.repo.GetShippingRate(ctx, store.ID, countryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return pricing.ResolveRate(store, nil), nil
		}
		return pricing.Rate{}, err
	}
	return pricing.ResolveRate(store, &override), nil
}

func (s *shippingService) GetShippingDetails(ctx context.Context, product *domain.Product, freeShipping *domain.FreeShipping, store *domain.Store, dest domain.CountryInfo) (*domain.ShippingDetails, error) {
	// An unknown destination is not an error: the quote degrades to store
	// defaults and country-scoped free shipping cannot match.
	var countryID string
	country, err := s.repo.GetCountryByNameAndCode(ctx, dest.Name, dest.Code)
	switch {
	case err == nil:
		countryID = country.ID
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, err
	}

	rate, err := s.resolveRate(ctx, store, countryID)
	if err != nil {
		return nil, err
	}

	var eligibleIDs []string
	if freeShipping != nil {
		eligibleIDs = freeShipping.EligibleCountryIDs
	}
	free := pricing.FreeShippingEligible(product.FreeShippingForAllCountries, eligibleIDs, countryID)

	details := &domain.ShippingDetails{
		ShippingFeeMethod: product.ShippingFeeMethod,
		ShippingService:   rate.ShippingService,
		DeliveryTimeMin:   rate.DeliveryTimeMin,
		DeliveryTimeMax:   rate.DeliveryTimeMax,
		ReturnPolicy:      rate.ReturnPolicy,
		CountryName:       dest.Name,
		CountryCode:       dest.Code,
		IsFreeShipping:    free,
	}

	switch product.ShippingFeeMethod {
	case domain.FeeMethodItem:
		details.ShippingFee = rate.FeePerItem
		details.ExtraShippingFee = rate.FeeForAdditionalItem
	case domain.FeeMethodWeight:
		details.ShippingFee = rate.FeePerKg
	case domain.FeeMethodFixed:
		details.ShippingFee = rate.FeeFixed
	}

	if free {
		details.ShippingFee = 0
		details.ExtraShippingFee = 0
	}

	return details, nil
}

func (s *shippingService) GetDeliveryDetails(ctx context.Context, storeID, countryID string) (*domain.DeliveryDetails, error) {
	store, err := s.repo.GetStoreByID(ctx, storeID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrStoreNotFound)
	}

	rate, err := s.resolveRate(ctx, &store, countryID)
	if err != nil {
		return nil, err
	}

	details := &domain.DeliveryDetails{
		ShippingService: rate.ShippingService,
		DeliveryTimeMin: rate.DeliveryTimeMin,
		DeliveryTimeMax: rate.DeliveryTimeMax,
	}
	if details.ShippingService == "" {
		details.ShippingService = fallbackShippingService
	}
	if details.DeliveryTimeMin == 0 {
		details.DeliveryTimeMin = fallbackDeliveryTimeMin
	}
	if details.DeliveryTimeMax == 0 {
		details.DeliveryTimeMax = fallbackDeliveryTimeMax
	}
	return details, nil
}
