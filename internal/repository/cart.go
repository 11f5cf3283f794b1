package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazario/bazario/internal/domain"
)

func (r *Repository) GetCartByID(ctx context.Context, id string) (domain.Cart, error) {
	return r.getCart(ctx, `WHERE id = $1`, id)
}

func (r *Repository) GetCartByUserID(ctx context.Context, userID string) (domain.Cart, error) {
	return r.getCart(ctx, `WHERE user_id = $1`, userID)
}

func (r *Repository) getCart(ctx context.Context, where string, arg any) (domain.Cart, error) {
	var (
		cart     domain.Cart
		couponID *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, coupon_id, sub_total, shipping_fees, total, created_at, updated_at
		 FROM carts `+where, arg,
	).Scan(&cart.ID, &cart.UserID, &couponID, &cart.SubTotal,
		&cart.ShippingFees, &cart.Total, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return domain.Cart{}, notFound(err)
	}
	if couponID != nil {
		cart.CouponID = *couponID
	}

	items, err := r.getCartItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Items = items
	return cart, nil
}

func (r *Repository) getCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, cart_id, product_id, variant_id, size_id, store_id,
			sku, name, image, size_label, product_slug, variant_slug,
			quantity, price, shipping_fee, total_price
		 FROM cart_items WHERE cart_id = $1 ORDER BY created_at`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(
			&it.ID, &it.CartID, &it.ProductID, &it.VariantID, &it.SizeID, &it.StoreID,
			&it.SKU, &it.Name, &it.Image, &it.SizeLabel, &it.ProductSlug, &it.VariantSlug,
			&it.Quantity, &it.Price, &it.ShippingFee, &it.TotalPrice,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) DeleteCartByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

func (r *Repository) CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID == "" {
		cart.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO carts (id, user_id, coupon_id, sub_total, shipping_fees, total)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
		 RETURNING created_at, updated_at`,
		cart.ID, cart.UserID, cart.CouponID, cart.SubTotal, cart.ShippingFees, cart.Total,
	).Scan(&cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (r *Repository) CreateCartItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_items (id, cart_id, product_id, variant_id, size_id, store_id,
			sku, name, image, size_label, product_slug, variant_slug,
			quantity, price, shipping_fee, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		item.ID, item.CartID, item.ProductID, item.VariantID, item.SizeID, item.StoreID,
		item.SKU, item.Name, item.Image, item.SizeLabel, item.ProductSlug, item.VariantSlug,
		item.Quantity, item.Price, item.ShippingFee, item.TotalPrice)
	if err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

func (r *Repository) UpdateCartItemPricing(ctx context.Context, item domain.CartItem) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cart_items
		 SET name = $2, image = $3, price = $4, quantity = $5,
		     shipping_fee = $6, total_price = $7
		 WHERE id = $1`,
		item.ID, item.Name, item.Image, item.Price, item.Quantity,
		item.ShippingFee, item.TotalPrice)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateCartTotals(ctx context.Context, cartID string, subTotal, shippingFees, total float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE carts SET sub_total = $2, shipping_fees = $3, total = $4, updated_at = now()
		 WHERE id = $1`,
		cartID, subTotal, shippingFees, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetCartCoupon(ctx context.Context, cartID, couponID string, total float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE carts SET coupon_id = $2, total = $3, updated_at = now() WHERE id = $1`,
		cartID, couponID, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ClearCartCoupon(ctx context.Context, cartID string, total float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE carts SET coupon_id = NULL, total = $2, updated_at = now() WHERE id = $1`,
		cartID, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
