package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazario/bazario/internal/domain"
)

func (r *Repository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, country_id, order_status, payment_status,
			payment_method, sub_total, shipping_fees, total)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		 RETURNING created_at, updated_at`,
		order.ID, order.UserID, order.CountryID, order.OrderStatus, order.PaymentStatus,
		string(order.PaymentMethod), order.SubTotal, order.ShippingFees, order.Total,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *Repository) CreateOrderGroup(ctx context.Context, group domain.OrderGroup) (domain.OrderGroup, error) {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO order_groups (id, order_id, store_id, status, sub_total,
			shipping_fees, total, coupon_id, shipping_service,
			delivery_time_min, delivery_time_max)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)`,
		group.ID, group.OrderID, group.StoreID, group.Status, group.SubTotal,
		group.ShippingFees, group.Total, group.CouponID, group.ShippingService,
		group.DeliveryTimeMin, group.DeliveryTimeMax)
	if err != nil {
		return domain.OrderGroup{}, err
	}
	return group, nil
}

func (r *Repository) CreateOrderItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO order_items (id, order_group_id, product_id, variant_id, size_id,
			sku, name, image, size_label, product_slug, variant_slug,
			quantity, price, shipping_fee, total_price, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		item.ID, item.OrderGroupID, item.ProductID, item.VariantID, item.SizeID,
		item.SKU, item.Name, item.Image, item.SizeLabel, item.ProductSlug, item.VariantSlug,
		item.Quantity, item.Price, item.ShippingFee, item.TotalPrice, item.Status)
	if err != nil {
		return domain.OrderItem{}, err
	}
	return item, nil
}

func (r *Repository) UpdateOrderTotals(ctx context.Context, orderID string, subTotal, shippingFees, total float64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET sub_total = $2, shipping_fees = $3, total = $4, updated_at = now()
		 WHERE id = $1`,
		orderID, subTotal, shippingFees, total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrder loads the order with its groups (total descending) and items.
func (r *Repository) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var (
		order  domain.Order
		method *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, country_id, order_status, payment_status, payment_method,
			sub_total, shipping_fees, total, created_at, updated_at
		 FROM orders WHERE id = $1`, orderID,
	).Scan(&order.ID, &order.UserID, &order.CountryID, &order.OrderStatus,
		&order.PaymentStatus, &method, &order.SubTotal, &order.ShippingFees,
		&order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return domain.Order{}, notFound(err)
	}
	if method != nil {
		order.PaymentMethod = domain.PaymentMethod(*method)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, store_id, status, sub_total, shipping_fees, total,
			coupon_id, shipping_service, delivery_time_min, delivery_time_max
		 FROM order_groups WHERE order_id = $1 ORDER BY total DESC`, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			g        domain.OrderGroup
			couponID *string
		)
		if err := rows.Scan(&g.ID, &g.OrderID, &g.StoreID, &g.Status,
			&g.SubTotal, &g.ShippingFees, &g.Total, &couponID,
			&g.ShippingService, &g.DeliveryTimeMin, &g.DeliveryTimeMax); err != nil {
			return domain.Order{}, err
		}
		if couponID != nil {
			g.CouponID = *couponID
		}
		order.Groups = append(order.Groups, g)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, err
	}

	for i := range order.Groups {
		items, err := r.getOrderItems(ctx, order.Groups[i].ID)
		if err != nil {
			return domain.Order{}, err
		}
		order.Groups[i].Items = items
	}
	return order, nil
}

func (r *Repository) getOrderItems(ctx context.Context, groupID string) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_group_id, product_id, variant_id, size_id,
			sku, name, image, size_label, product_slug, variant_slug,
			quantity, price, shipping_fee, total_price, status
		 FROM order_items WHERE order_group_id = $1 ORDER BY created_at`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderGroupID, &it.ProductID, &it.VariantID,
			&it.SizeID, &it.SKU, &it.Name, &it.Image, &it.SizeLabel,
			&it.ProductSlug, &it.VariantSlug, &it.Quantity, &it.Price,
			&it.ShippingFee, &it.TotalPrice, &it.Status); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) GetOrderGroup(ctx context.Context, groupID, storeID string) (domain.OrderGroup, error) {
	var (
		g        domain.OrderGroup
		couponID *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, order_id, store_id, status, sub_total, shipping_fees, total,
			coupon_id, shipping_service, delivery_time_min, delivery_time_max
		 FROM order_groups WHERE id = $1 AND store_id = $2`, groupID, storeID,
	).Scan(&g.ID, &g.OrderID, &g.StoreID, &g.Status, &g.SubTotal, &g.ShippingFees,
		&g.Total, &couponID, &g.ShippingService, &g.DeliveryTimeMin, &g.DeliveryTimeMax)
	if err != nil {
		return domain.OrderGroup{}, notFound(err)
	}
	if couponID != nil {
		g.CouponID = *couponID
	}
	return g, nil
}

func (r *Repository) UpdateOrderGroupStatus(ctx context.Context, groupID string, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE order_groups SET status = $2 WHERE id = $1`, groupID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetOrderItem(ctx context.Context, itemID string) (domain.OrderItem, error) {
	var it domain.OrderItem
	err := r.db.QueryRow(ctx,
		`SELECT id, order_group_id, product_id, variant_id, size_id,
			sku, name, image, size_label, product_slug, variant_slug,
			quantity, price, shipping_fee, total_price, status
		 FROM order_items WHERE id = $1`, itemID,
	).Scan(&it.ID, &it.OrderGroupID, &it.ProductID, &it.VariantID, &it.SizeID,
		&it.SKU, &it.Name, &it.Image, &it.SizeLabel, &it.ProductSlug, &it.VariantSlug,
		&it.Quantity, &it.Price, &it.ShippingFee, &it.TotalPrice, &it.Status)
	if err != nil {
		return domain.OrderItem{}, notFound(err)
	}
	return it, nil
}

func (r *Repository) UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE order_items SET status = $2 WHERE id = $1`, itemID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateOrderPayment(ctx context.Context, orderID string, status domain.PaymentStatus, method domain.PaymentMethod) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET payment_status = $2, payment_method = $3, updated_at = now()
		 WHERE id = $1`,
		orderID, status, method)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
