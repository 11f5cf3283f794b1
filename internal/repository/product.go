package repository

import (
	"context"

	"github.com/bazario/bazario/internal/domain"
)

// GetPricingProduct loads everything one cart line needs for revalidation.
// The variant and size must belong to the product; a mismatched combination
// reports ErrNotFound the same as a missing row.
func (r *Repository) GetPricingProduct(ctx context.Context, productID, variantID, sizeID string) (PricingProduct, error) {
	var pp PricingProduct

	err := r.db.QueryRow(ctx,
		`SELECT p.id, p.slug, p.name, p.store_id, p.shipping_fee_method,
			p.free_shipping_for_all_countries, p.created_at, p.updated_at,
			v.id, v.product_id, v.slug, v.sku, v.name, v.image, v.weight_kg,
			s.id, s.variant_id, s.label, s.price, s.discount, s.stock
		 FROM products p
		 JOIN product_variants v ON v.product_id = p.id AND v.id = $2
		 JOIN sizes s ON s.variant_id = v.id AND s.id = $3
		 WHERE p.id = $1`,
		productID, variantID, sizeID,
	).Scan(
		&pp.Product.ID, &pp.Product.Slug, &pp.Product.Name, &pp.Product.StoreID,
		&pp.Product.ShippingFeeMethod, &pp.Product.FreeShippingForAllCountries,
		&pp.Product.CreatedAt, &pp.Product.UpdatedAt,
		&pp.Variant.ID, &pp.Variant.ProductID, &pp.Variant.Slug, &pp.Variant.SKU,
		&pp.Variant.Name, &pp.Variant.Image, &pp.Variant.WeightKg,
		&pp.Size.ID, &pp.Size.VariantID, &pp.Size.Label, &pp.Size.Price,
		&pp.Size.Discount, &pp.Size.Stock,
	)
	if err != nil {
		return PricingProduct{}, notFound(err)
	}

	store, err := r.GetStoreByID(ctx, pp.Product.StoreID)
	if err != nil {
		return PricingProduct{}, err
	}
	pp.Store = store

	fs, err := r.getFreeShipping(ctx, pp.Product.ID)
	if err != nil {
		return PricingProduct{}, err
	}
	pp.FreeShipping = fs

	return pp, nil
}

// getFreeShipping returns nil when the product has no free-shipping row.
func (r *Repository) getFreeShipping(ctx context.Context, productID string) (*domain.FreeShipping, error) {
	var fs domain.FreeShipping
	err := r.db.QueryRow(ctx,
		`SELECT id, product_id FROM free_shipping WHERE product_id = $1`, productID,
	).Scan(&fs.ID, &fs.ProductID)
	if err != nil {
		if notFound(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT country_id FROM free_shipping_countries WHERE free_shipping_id = $1`, fs.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var countryID string
		if err := rows.Scan(&countryID); err != nil {
			return nil, err
		}
		fs.EligibleCountryIDs = append(fs.EligibleCountryIDs, countryID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &fs, nil
}
