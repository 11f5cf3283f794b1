package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/repository"
	"github.com/bazario/bazario/internal/telemetry"
)

// couponService implements domain.CouponService.
type couponService struct {
	repo    repository.Querier
	logger  zerolog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewCouponService creates a new domain.CouponService instance. metrics may
// be nil in tests.
func NewCouponService(repo repository.Querier, logger zerolog.Logger, metrics *telemetry.BusinessMetrics) domain.CouponService {
	return &couponService{repo: repo, logger: logger, metrics: metrics}
}

// ownedStore loads the store by slug and verifies the seller owns it.
func (s *couponService) ownedStore(ctx context.Context, auth domain.AuthContext, storeSlug string) (domain.Store, error) {
	if err := auth.RequireSeller(); err != nil {
		return domain.Store{}, err
	}
	store, err := s.repo.GetStoreBySlug(ctx, storeSlug)
	if err != nil {
		return domain.Store{}, orDomainErr(err, domain.ErrStoreNotFound)
	}
	if store.OwnerID != auth.UserID {
		return domain.Store{}, ErrNotStoreOwner
	}
	return store, nil
}

func (s *couponService) UpsertCoupon(ctx context.Context, auth domain.AuthContext, storeSlug string, coupon domain.Coupon) (*domain.Coupon, error) {
	const op = "coupon.upsert"

	store, err := s.ownedStore(ctx, auth, storeSlug)
	if err != nil {
		return nil, err
	}

	if coupon.Code == "" {
		return nil, domain.Invalid(op, "Coupon code is required.")
	}
	if coupon.Discount < 1 || coupon.Discount > 99 {
		return nil, domain.Invalid(op, "Discount must be between 1 and 99 percent.")
	}
	if !coupon.EndsAt.After(coupon.StartsAt) {
		return nil, domain.Invalid(op, "Coupon end date must be after the start date.")
	}

	_, err = s.repo.FindConflictingCoupon(ctx, store.ID, coupon.Code, coupon.ID)
	if err == nil {
		return nil, domain.Conflict(op, "A coupon with this code already exists for this store.")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	coupon.StoreID = store.ID
	saved, err := s.repo.UpsertCoupon(ctx, coupon)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("coupon_id", saved.ID).
		Str("store_id", store.ID).
		Str("code", saved.Code).
		Float64("discount", saved.Discount).
		Msg("coupon upserted")

	return &saved, nil
}

func (s *couponService) ListStoreCoupons(ctx context.Context, auth domain.AuthContext, storeSlug string) ([]domain.Coupon, error) {
	store, err := s.ownedStore(ctx, auth, storeSlug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListCouponsByStore(ctx, store.ID)
}

func (s *couponService) GetCoupon(ctx context.Context, couponID string) (*domain.Coupon, error) {
	coupon, err := s.repo.GetCouponByID(ctx, couponID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrCouponNotFound)
	}
	return &coupon, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, auth domain.AuthContext, storeSlug, couponID string) error {
	store, err := s.ownedStore(ctx, auth, storeSlug)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCoupon(ctx, couponID, store.ID); err != nil {
		return orDomainErr(err, domain.ErrCouponNotFound)
	}
	s.logger.Info().Str("coupon_id", couponID).Str("store_id", store.ID).Msg("coupon deleted")
	return nil
}

func (s *couponService) rejectCoupon(reason string, err error) error {
	if s.metrics != nil {
		s.metrics.CouponsRejected.WithLabelValues(reason).Inc()
	}
	return err
}

func (s *couponService) ApplyCoupon(ctx context.Context, cartID, code string) (*domain.CouponApplication, error) {
	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrCartNotFound)
	}
	if cart.CouponID != "" {
		return nil, s.rejectCoupon("already_applied", domain.ErrCouponAlreadyApplied)
	}

	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, s.rejectCoupon("not_found", orDomainErr(err, domain.ErrCouponNotFound))
	}
	if !coupon.ActiveAt(time.Now()) {
		return nil, s.rejectCoupon("inactive", domain.ErrCouponInactive)
	}

	discount, matched := couponDiscount(cart.Items, coupon.StoreID, coupon.Discount)
	if !matched {
		return nil, s.rejectCoupon("not_applicable", domain.ErrCouponNotApplicable)
	}

	newTotal := cart.Total - discount
	if err := s.repo.SetCartCoupon(ctx, cart.ID, coupon.ID, newTotal); err != nil {
		return nil, orDomainErr(err, domain.ErrCartNotFound)
	}
	cart.CouponID = coupon.ID
	cart.Total = newTotal

	store, err := s.repo.GetStoreByID(ctx, coupon.StoreID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrStoreNotFound)
	}

	if s.metrics != nil {
		s.metrics.CouponsApplied.WithLabelValues(coupon.StoreID).Inc()
	}
	s.logger.Info().
		Str("cart_id", cart.ID).
		Str("coupon_id", coupon.ID).
		Float64("discount", discount).
		Msg("coupon applied")

	return &domain.CouponApplication{
		Cart:       &cart,
		Discount:   discount,
		StoreName:  store.Name,
		CouponCode: coupon.Code,
	}, nil
}

func (s *couponService) RemoveCoupon(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrCartNotFound)
	}
	if cart.CouponID == "" {
		return nil, domain.ErrNoCouponApplied
	}

	restored := cart.SubTotal + cart.ShippingFees
	if err := s.repo.ClearCartCoupon(ctx, cart.ID, restored); err != nil {
		return nil, orDomainErr(err, domain.ErrCartNotFound)
	}
	cart.CouponID = ""
	cart.Total = restored

	if s.metrics != nil {
		s.metrics.CouponsRemoved.Inc()
	}
	s.logger.Info().Str("cart_id", cart.ID).Msg("coupon removed")

	return &cart, nil
}
