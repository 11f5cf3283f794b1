package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazario/bazario/internal/domain"
)

const couponColumns = `id, store_id, code, discount, starts_at, ends_at, created_at, updated_at`

func scanCoupon(row interface{ Scan(...any) error }) (domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(&c.ID, &c.StoreID, &c.Code, &c.Discount,
		&c.StartsAt, &c.EndsAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Coupon{}, notFound(err)
	}
	return c, nil
}

func (r *Repository) GetCouponByID(ctx context.Context, id string) (domain.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
}

func (r *Repository) GetCouponByCode(ctx context.Context, code string) (domain.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
}

// FindConflictingCoupon looks for another coupon with the same code in the
// same store, excluding the coupon being upserted.
func (r *Repository) FindConflictingCoupon(ctx context.Context, storeID, code, excludeID string) (domain.Coupon, error) {
	return scanCoupon(r.db.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons
		 WHERE store_id = $1 AND code = $2 AND id <> $3`,
		storeID, code, excludeID))
}

func (r *Repository) UpsertCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	if coupon.ID == "" {
		coupon.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO coupons (id, store_id, code, discount, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET store_id = EXCLUDED.store_id, code = EXCLUDED.code,
		     discount = EXCLUDED.discount, starts_at = EXCLUDED.starts_at,
		     ends_at = EXCLUDED.ends_at, updated_at = now()
		 RETURNING created_at, updated_at`,
		coupon.ID, coupon.StoreID, coupon.Code, coupon.Discount,
		coupon.StartsAt, coupon.EndsAt,
	).Scan(&coupon.CreatedAt, &coupon.UpdatedAt)
	if err != nil {
		return domain.Coupon{}, err
	}
	return coupon, nil
}

func (r *Repository) ListCouponsByStore(ctx context.Context, storeID string) ([]domain.Coupon, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE store_id = $1 ORDER BY created_at DESC`,
		storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *Repository) DeleteCoupon(ctx context.Context, couponID, storeID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM coupons WHERE id = $1 AND store_id = $2`, couponID, storeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
