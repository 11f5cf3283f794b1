package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazario/bazario/internal/domain"
)

// UpsertPaymentDetails inserts or replaces the payment record for an order.
// payment_details carries a unique constraint on order_id, so a capture
// retry overwrites the previous attempt instead of duplicating it.
func (r *Repository) UpsertPaymentDetails(ctx context.Context, details domain.PaymentDetails) (domain.PaymentDetails, error) {
	if details.ID == "" {
		details.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO payment_details (id, order_id, user_id, provider, provider_ref,
			amount, currency, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (order_id) DO UPDATE
		 SET user_id = EXCLUDED.user_id, provider = EXCLUDED.provider,
		     provider_ref = EXCLUDED.provider_ref, amount = EXCLUDED.amount,
		     currency = EXCLUDED.currency, status = EXCLUDED.status,
		     updated_at = now()
		 RETURNING id, created_at, updated_at`,
		details.ID, details.OrderID, details.UserID, details.Provider,
		details.ProviderRef, details.Amount, details.Currency, details.Status,
	).Scan(&details.ID, &details.CreatedAt, &details.UpdatedAt)
	if err != nil {
		return domain.PaymentDetails{}, err
	}
	return details, nil
}
