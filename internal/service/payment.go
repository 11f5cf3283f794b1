package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/billing"
	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/events"
	"github.com/bazario/bazario/internal/repository"
	"github.com/bazario/bazario/internal/telemetry"
)

// paymentService implements domain.PaymentService over a set of billing
// providers keyed by payment method.
type paymentService struct {
	repo      repository.Querier
	providers map[domain.PaymentMethod]billing.Provider
	publisher events.Publisher
	logger    zerolog.Logger
	metrics   *telemetry.BusinessMetrics
	currency  string
}

// NewPaymentService creates a new domain.PaymentService instance. metrics
// may be nil in tests.
func NewPaymentService(repo repository.Querier, providers []billing.Provider, publisher events.Publisher, logger zerolog.Logger, metrics *telemetry.BusinessMetrics, currency string) domain.PaymentService {
	byMethod := make(map[domain.PaymentMethod]billing.Provider, len(providers))
	for _, p := range providers {
		byMethod[p.Method()] = p
	}
	return &paymentService{
		repo:      repo,
		providers: byMethod,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		currency:  currency,
	}
}

// ownedOrder loads the order and verifies the caller placed it.
func (s *paymentService) ownedOrder(ctx context.Context, auth domain.AuthContext, orderID string) (domain.Order, error) {
	if err := auth.RequireUser(); err != nil {
		return domain.Order{}, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, orDomainErr(err, domain.ErrOrderNotFound)
	}
	if order.UserID != auth.UserID {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, auth domain.AuthContext, orderID string, method domain.PaymentMethod) (*domain.PaymentInitiation, error) {
	order, err := s.ownedOrder(ctx, auth, orderID)
	if err != nil {
		return nil, err
	}

	provider, ok := s.providers[method]
	if !ok {
		return nil, domain.ErrUnknownPaymentMethod
	}

	payment, err := provider.CreatePayment(ctx, billing.CreatePaymentParams{
		OrderID:  order.ID,
		Amount:   order.Total,
		Currency: s.currency,
	})
	if err != nil {
		return nil, domain.WrapError(err, domain.EPAYMENT, "payment.create", "Payment could not be initiated.")
	}

	if _, err := s.repo.UpsertPaymentDetails(ctx, domain.PaymentDetails{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Provider:    method,
		ProviderRef: payment.ProviderRef,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Status:      payment.Status,
	}); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("method", string(method)).
		Str("provider_ref", payment.ProviderRef).
		Msg("payment initiated")

	return &domain.PaymentInitiation{
		ProviderRef:  payment.ProviderRef,
		ClientSecret: payment.ClientSecret,
	}, nil
}

func (s *paymentService) CapturePayment(ctx context.Context, auth domain.AuthContext, orderID, providerRef string, method domain.PaymentMethod) (*domain.Order, error) {
	order, err := s.ownedOrder(ctx, auth, orderID)
	if err != nil {
		return nil, err
	}

	provider, ok := s.providers[method]
	if !ok {
		return nil, domain.ErrUnknownPaymentMethod
	}

	if s.metrics != nil {
		s.metrics.PaymentAttempts.WithLabelValues(string(method)).Inc()
	}

	capture, err := provider.CapturePayment(ctx, billing.CapturePaymentParams{
		OrderID:     order.ID,
		ProviderRef: providerRef,
	})

	// A provider failure is not an API failure: the order is marked Failed
	// and returned in that known state so the shopper can retry.
	if err != nil || !capture.Succeeded {
		return s.recordFailure(ctx, order, method, providerRef, capture, err)
	}

	err = s.repo.WithTx(ctx, func(tx repository.Querier) error {
		if err := tx.UpdateOrderPayment(ctx, order.ID, domain.PaymentStatusPaid, method); err != nil {
			return orDomainErr(err, domain.ErrOrderNotFound)
		}
		_, err := tx.UpsertPaymentDetails(ctx, domain.PaymentDetails{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Provider:    method,
			ProviderRef: capture.ProviderRef,
			Amount:      capture.Amount,
			Currency:    capture.Currency,
			Status:      capture.Status,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentSucceeded.WithLabelValues(string(method)).Inc()
	}
	if err := s.publisher.Publish(ctx, events.SubjectPaymentCaptured, events.PaymentResult{
		OrderID:     order.ID,
		Method:      string(method),
		ProviderRef: capture.ProviderRef,
		Status:      capture.Status,
		Amount:      capture.Amount,
		CapturedAt:  time.Now(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("payment captured event not published")
	}
	s.logger.Info().
		Str("order_id", order.ID).
		Str("method", string(method)).
		Float64("amount", capture.Amount).
		Msg("payment captured")

	updated, err := s.repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrOrderNotFound)
	}
	return &updated, nil
}

// recordFailure persists the Failed payment state without surfacing the
// provider's error to the caller.
func (s *paymentService) recordFailure(ctx context.Context, order domain.Order, method domain.PaymentMethod, providerRef string, capture *billing.Capture, captureErr error) (*domain.Order, error) {
	status := "failed"
	reason := "provider_error"
	if captureErr == nil {
		status = capture.Status
		reason = "not_succeeded"
	}

	err := s.repo.WithTx(ctx, func(tx repository.Querier) error {
		if err := tx.UpdateOrderPayment(ctx, order.ID, domain.PaymentStatusFailed, method); err != nil {
			return orDomainErr(err, domain.ErrOrderNotFound)
		}
		_, err := tx.UpsertPaymentDetails(ctx, domain.PaymentDetails{
			OrderID:     order.ID,
			UserID:      order.UserID,
			Provider:    method,
			ProviderRef: providerRef,
			Currency:    s.currency,
			Status:      status,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PaymentFailed.WithLabelValues(string(method), reason).Inc()
	}
	if err := s.publisher.Publish(ctx, events.SubjectPaymentFailed, events.PaymentResult{
		OrderID:     order.ID,
		Method:      string(method),
		ProviderRef: providerRef,
		Status:      status,
		CapturedAt:  time.Now(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("payment failed event not published")
	}
	s.logger.Warn().
		Err(captureErr).
		Str("order_id", order.ID).
		Str("method", string(method)).
		Str("provider_status", status).
		Msg("payment capture did not succeed")

	updated, err := s.repo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrOrderNotFound)
	}
	return &updated, nil
}
