package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/billing"
	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/events"
	"github.com/bazario/bazario/internal/repository"
)

// WebhookService reconciles provider webhook events with order payment
// state. Captures are normally confirmed synchronously by the capture
// endpoint; the webhook path covers clients that never came back.
type WebhookService struct {
	repo      repository.Querier
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(repo repository.Querier, publisher events.Publisher, logger zerolog.Logger) *WebhookService {
	return &WebhookService{repo: repo, publisher: publisher, logger: logger}
}

// HandleStripeEvent applies a normalized Stripe event to the order it
// references. Events without an order ID are acknowledged and dropped.
func (s *WebhookService) HandleStripeEvent(ctx context.Context, evt billing.WebhookEvent) error {
	if evt.Kind == billing.EventIgnored {
		return nil
	}
	if evt.OrderID == "" {
		s.logger.Warn().Str("type", evt.Type).Msg("stripe event without order metadata")
		return nil
	}

	order, err := s.repo.GetOrder(ctx, evt.OrderID)
	if err != nil {
		return orDomainErr(err, domain.ErrOrderNotFound)
	}
	// The synchronous capture path may already have settled this order.
	if order.PaymentStatus == domain.PaymentStatusPaid {
		return nil
	}

	status := domain.PaymentStatusFailed
	subject := events.SubjectPaymentFailed
	if evt.Kind == billing.EventPaymentSucceeded {
		status = domain.PaymentStatusPaid
		subject = events.SubjectPaymentCaptured
	}

	err = s.repo.WithTx(ctx, func(tx repository.Querier) error {
		if err := tx.UpdateOrderPayment(ctx, order.ID, status, domain.PaymentMethodStripe); err != nil {
			return orDomainErr(err, domain.ErrOrderNotFound)
		}
		_, err := tx.UpsertPaymentDetails(ctx, domain.PaymentDetails{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Provider:    domain.PaymentMethodStripe,
			ProviderRef: evt.ProviderRef,
			Amount:      evt.Amount,
			Currency:    evt.Currency,
			Status:      evt.Status,
		})
		return err
	})
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, subject, events.PaymentResult{
		OrderID:     order.ID,
		Method:      string(domain.PaymentMethodStripe),
		ProviderRef: evt.ProviderRef,
		Status:      evt.Status,
		Amount:      evt.Amount,
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("webhook event not published")
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("type", evt.Type).
		Str("payment_status", string(status)).
		Msg("stripe webhook reconciled")

	return nil
}
