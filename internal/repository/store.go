package repository

import (
	"context"

	"github.com/bazario/bazario/internal/domain"
)

const storeColumns = `id, slug, name, owner_id,
	default_shipping_service, default_shipping_fee_per_item,
	default_shipping_fee_for_additional_item, default_shipping_fee_per_kg,
	default_shipping_fee_fixed, default_delivery_time_min,
	default_delivery_time_max, return_policy, created_at, updated_at`

func scanStore(row interface{ Scan(...any) error }) (domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.ID, &s.Slug, &s.Name, &s.OwnerID,
		&s.DefaultShippingService, &s.DefaultShippingFeePerItem,
		&s.DefaultShippingFeeForAdditionalItem, &s.DefaultShippingFeePerKg,
		&s.DefaultShippingFeeFixed, &s.DefaultDeliveryTimeMin,
		&s.DefaultDeliveryTimeMax, &s.ReturnPolicy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return domain.Store{}, notFound(err)
	}
	return s, nil
}

func (r *Repository) GetStoreByID(ctx context.Context, id string) (domain.Store, error) {
	return scanStore(r.db.QueryRow(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
}

func (r *Repository) GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error) {
	return scanStore(r.db.QueryRow(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE slug = $1`, slug))
}

func (r *Repository) GetShippingRate(ctx context.Context, storeID, countryID string) (domain.ShippingRate, error) {
	var sr domain.ShippingRate
	err := r.db.QueryRow(ctx,
		`SELECT id, store_id, country_id, shipping_service,
			shipping_fee_per_item, shipping_fee_for_additional_item,
			shipping_fee_per_kg, shipping_fee_fixed,
			delivery_time_min, delivery_time_max, return_policy
		 FROM shipping_rates WHERE store_id = $1 AND country_id = $2`,
		storeID, countryID,
	).Scan(
		&sr.ID, &sr.StoreID, &sr.CountryID, &sr.ShippingService,
		&sr.ShippingFeePerItem, &sr.ShippingFeeForAdditionalItem,
		&sr.ShippingFeePerKg, &sr.ShippingFeeFixed,
		&sr.DeliveryTimeMin, &sr.DeliveryTimeMax, &sr.ReturnPolicy,
	)
	if err != nil {
		return domain.ShippingRate{}, notFound(err)
	}
	return sr, nil
}
