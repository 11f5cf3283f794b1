package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/events"
	"github.com/bazario/bazario/internal/repository"
	"github.com/bazario/bazario/internal/telemetry"
)

// checkoutService implements domain.CheckoutService.
type checkoutService struct {
	repo      repository.Querier
	shipping  domain.ShippingService
	publisher events.Publisher
	logger    zerolog.Logger
	metrics   *telemetry.BusinessMetrics
}

// NewCheckoutService creates a new domain.CheckoutService instance. metrics
// may be nil in tests.
func NewCheckoutService(repo repository.Querier, shipping domain.ShippingService, publisher events.Publisher, logger zerolog.Logger, metrics *telemetry.BusinessMetrics) domain.CheckoutService {
	return &checkoutService{
		repo:      repo,
		shipping:  shipping,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// orderGroupDraft accumulates one store's lines before persistence.
type orderGroupDraft struct {
	storeID      string
	items        []domain.OrderItem
	subTotal     float64
	shippingFees float64
}

func (s *checkoutService) PlaceOrder(ctx context.Context, auth domain.AuthContext, cartID, countryID string) (*domain.Order, error) {
	const op = "checkout.placeOrder"

	if err := auth.RequireUser(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCountryByID(ctx, countryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Invalid(op, "Unknown destination country.")
		}
		return nil, err
	}

	var orderID string
	err := s.repo.WithTx(ctx, func(tx repository.Querier) error {
		cart, err := tx.GetCartByID(ctx, cartID)
		if err != nil {
			return orDomainErr(err, domain.ErrCartNotFound)
		}
		if cart.UserID != auth.UserID {
			return domain.ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return domain.ErrCartEmpty
		}

		// Revalidate every line at checkout time. The persisted cart is a
		// quote; the order snapshots live prices.
		var drafts []*orderGroupDraft
		byStore := make(map[string]*orderGroupDraft)
		for _, it := range cart.Items {
			repriced, _, err := priceLine(ctx, tx, domain.CartLine{
				ProductID: it.ProductID,
				VariantID: it.VariantID,
				SizeID:    it.SizeID,
				Quantity:  it.Quantity,
			}, countryID)
			if err != nil {
				return err
			}

			draft, ok := byStore[repriced.StoreID]
			if !ok {
				draft = &orderGroupDraft{storeID: repriced.StoreID}
				byStore[repriced.StoreID] = draft
				drafts = append(drafts, draft)
			}
			draft.items = append(draft.items, domain.OrderItem{
				ProductID:   repriced.ProductID,
				VariantID:   repriced.VariantID,
				SizeID:      repriced.SizeID,
				SKU:         repriced.SKU,
				Name:        repriced.Name,
				Image:       repriced.Image,
				SizeLabel:   repriced.SizeLabel,
				ProductSlug: repriced.ProductSlug,
				VariantSlug: repriced.VariantSlug,
				Quantity:    repriced.Quantity,
				Price:       repriced.Price,
				ShippingFee: repriced.ShippingFee,
				TotalPrice:  repriced.TotalPrice,
				Status:      domain.OrderStatusPending,
			})
			draft.subTotal += repriced.Price * float64(repriced.Quantity)
			draft.shippingFees += repriced.ShippingFee
		}

		// The cart coupon discounts only the group belonging to its store,
		// and only while still active.
		var coupon *domain.Coupon
		if cart.CouponID != "" {
			c, err := tx.GetCouponByID(ctx, cart.CouponID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if err == nil && c.ActiveAt(time.Now()) {
				coupon = &c
			}
		}

		order, err := tx.CreateOrder(ctx, domain.Order{
			UserID:        auth.UserID,
			CountryID:     countryID,
			OrderStatus:   domain.OrderStatusPending,
			PaymentStatus: domain.PaymentStatusPending,
		})
		if err != nil {
			return domain.WrapError(err, domain.EINTERNAL, op, "Order could not be created.")
		}
		orderID = order.ID

		var orderShipping, orderTotal float64
		for _, draft := range drafts {
			groupTotal := draft.subTotal + draft.shippingFees
			couponID := ""
			if coupon != nil && coupon.StoreID == draft.storeID {
				groupTotal -= groupTotal * coupon.Discount / 100
				couponID = coupon.ID
			}

			delivery, err := s.shipping.GetDeliveryDetails(ctx, draft.storeID, countryID)
			if err != nil {
				return err
			}

			// SubTotal stays the pre-discount merchandise sum; the coupon
			// shows up only in Total.
			group, err := tx.CreateOrderGroup(ctx, domain.OrderGroup{
				OrderID:         order.ID,
				StoreID:         draft.storeID,
				Status:          domain.OrderStatusPending,
				SubTotal:        draft.subTotal,
				ShippingFees:    draft.shippingFees,
				Total:           groupTotal,
				CouponID:        couponID,
				ShippingService: delivery.ShippingService,
				DeliveryTimeMin: delivery.DeliveryTimeMin,
				DeliveryTimeMax: delivery.DeliveryTimeMax,
			})
			if err != nil {
				return domain.WrapError(err, domain.EINTERNAL, op, "Order could not be created.")
			}

			for _, item := range draft.items {
				item.OrderGroupID = group.ID
				if _, err := tx.CreateOrderItem(ctx, item); err != nil {
					return domain.WrapError(err, domain.EINTERNAL, op, "Order could not be created.")
				}
			}

			orderShipping += draft.shippingFees
			orderTotal += groupTotal
		}

		return tx.UpdateOrderTotals(ctx, order.ID, orderTotal-orderShipping, orderShipping, orderTotal)
	})
	if err != nil {
		return nil, err
	}

	placed, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrOrderNotFound)
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
		s.metrics.OrderValue.Observe(placed.Total)
		s.metrics.OrderGroupCount.Observe(float64(len(placed.Groups)))
	}
	if err := s.publisher.Publish(ctx, events.SubjectOrderPlaced, events.OrderPlaced{
		OrderID:    placed.ID,
		UserID:     placed.UserID,
		GroupCount: len(placed.Groups),
		Total:      placed.Total,
		PlacedAt:   placed.CreatedAt,
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("order placed event not published")
	}
	s.logger.Info().
		Str("order_id", placed.ID).
		Str("user_id", auth.UserID).
		Int("groups", len(placed.Groups)).
		Float64("total", placed.Total).
		Msg("order placed")

	return &placed, nil
}
