package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/pricing"
	"github.com/bazario/bazario/internal/repository"
	"github.com/bazario/bazario/internal/telemetry"
)

// cartService implements domain.CartService.
type cartService struct {
	repo    repository.Querier
	logger  zerolog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewCartService creates a new domain.CartService instance. metrics may be
// nil in tests.
func NewCartService(repo repository.Querier, logger zerolog.Logger, metrics *telemetry.BusinessMetrics) domain.CartService {
	return &cartService{repo: repo, logger: logger, metrics: metrics}
}

// destCountryID resolves the cookie destination to a country row. An
// unknown destination resolves to the empty ID: pricing then uses store
// defaults and country-scoped free shipping cannot match.
func destCountryID(ctx context.Context, repo repository.Querier, dest domain.CountryInfo) (string, error) {
	if dest.Name == "" && dest.Code == "" {
		return "", nil
	}
	country, err := repo.GetCountryByNameAndCode(ctx, dest.Name, dest.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return country.ID, nil
}

// priceLine revalidates one cart line against the live catalog: quantity
// clamped to stock, unit price discounted, shipping fee computed for the
// destination. The second return reports whether the quantity was clamped.
func priceLine(ctx context.Context, repo repository.Querier, line domain.CartLine, countryID string) (domain.CartItem, bool, error) {
	pp, err := repo.GetPricingProduct(ctx, line.ProductID, line.VariantID, line.SizeID)
	if err != nil {
		return domain.CartItem{}, false, orDomainErr(err, domain.ErrInvalidCartLine)
	}

	var override *domain.ShippingRate
	if countryID != "" {
		rate, err := repo.GetShippingRate(ctx, pp.Store.ID, countryID)
		switch {
		case err == nil:
			override = &rate
		case errors.Is(err, repository.ErrNotFound):
		default:
			return domain.CartItem{}, false, err
		}
	}
	rate := pricing.ResolveRate(&pp.Store, override)

	var eligibleIDs []string
	if pp.FreeShipping != nil {
		eligibleIDs = pp.FreeShipping.EligibleCountryIDs
	}
	free := pricing.FreeShippingEligible(pp.Product.FreeShippingForAllCountries, eligibleIDs, countryID)

	quantity := pricing.ClampQuantity(line.Quantity, pp.Size.Stock)
	unitPrice := pricing.EffectiveUnitPrice(pp.Size.Price, pp.Size.Discount)
	fee := pricing.Fee(rate, pp.Product.ShippingFeeMethod, quantity, pp.Variant.WeightKg, free)

	item := domain.CartItem{
		ProductID:   pp.Product.ID,
		VariantID:   pp.Variant.ID,
		SizeID:      pp.Size.ID,
		StoreID:     pp.Store.ID,
		SKU:         pp.Variant.SKU,
		Name:        pp.Product.Name + " · " + pp.Variant.Name,
		Image:       pp.Variant.Image,
		SizeLabel:   pp.Size.Label,
		ProductSlug: pp.Product.Slug,
		VariantSlug: pp.Variant.Slug,
		Quantity:    quantity,
		Price:       unitPrice,
		ShippingFee: fee,
		TotalPrice:  pricing.LineTotal(unitPrice, quantity, fee),
	}
	return item, quantity < line.Quantity, nil
}

// couponDiscount computes the discount a store-scoped coupon takes off the
// cart aggregate: the percentage of the matching lines' price and shipping.
// matched is false when no line belongs to the coupon's store.
func couponDiscount(items []domain.CartItem, storeID string, percent float64) (discount float64, matched bool) {
	var base float64
	for _, it := range items {
		if it.StoreID != storeID {
			continue
		}
		matched = true
		base += it.Price*float64(it.Quantity) + it.ShippingFee
	}
	return base * percent / 100, matched
}

func (s *cartService) SaveCart(ctx context.Context, auth domain.AuthContext, dest domain.CountryInfo, lines []domain.CartLine) (*domain.Cart, error) {
	if err := auth.RequireUser(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	var saved domain.Cart
	clamps := 0
	err := s.repo.WithTx(ctx, func(tx repository.Querier) error {
		countryID, err := destCountryID(ctx, tx, dest)
		if err != nil {
			return err
		}

		items := make([]domain.CartItem, 0, len(lines))
		var subTotal, shippingFees float64
		for _, line := range lines {
			item, clamped, err := priceLine(ctx, tx, line, countryID)
			if err != nil {
				return err
			}
			if clamped {
				clamps++
			}
			items = append(items, item)
			subTotal += item.Price * float64(item.Quantity)
			shippingFees += item.ShippingFee
		}

		// Replace wholesale. The old cart's coupon does not survive a save;
		// the client re-applies it against the new contents.
		if err := tx.DeleteCartByUserID(ctx, auth.UserID); err != nil {
			return err
		}

		cart, err := tx.CreateCart(ctx, domain.Cart{
			UserID:       auth.UserID,
			SubTotal:     subTotal,
			ShippingFees: shippingFees,
			Total:        subTotal + shippingFees,
		})
		if err != nil {
			return err
		}

		for i := range items {
			items[i].CartID = cart.ID
			created, err := tx.CreateCartItem(ctx, items[i])
			if err != nil {
				return err
			}
			items[i] = created
		}
		cart.Items = items
		saved = cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CartsSaved.WithLabelValues(dest.Code).Inc()
		s.metrics.CartValue.Observe(saved.Total)
		s.metrics.CartLinesSaved.Observe(float64(len(saved.Items)))
		s.metrics.CartStockClamps.Add(float64(clamps))
	}
	s.logger.Info().
		Str("cart_id", saved.ID).
		Str("user_id", auth.UserID).
		Int("lines", len(saved.Items)).
		Int("stock_clamps", clamps).
		Float64("total", saved.Total).
		Msg("cart saved")

	return &saved, nil
}

func (s *cartService) GetCart(ctx context.Context, auth domain.AuthContext) (*domain.Cart, error) {
	if err := auth.RequireUser(); err != nil {
		return nil, err
	}
	cart, err := s.repo.GetCartByUserID(ctx, auth.UserID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrCartNotFound)
	}
	return &cart, nil
}

func (s *cartService) RefreshCart(ctx context.Context, cartID string, dest domain.CountryInfo) (*domain.Cart, error) {
	err := s.repo.WithTx(ctx, func(tx repository.Querier) error {
		cart, err := tx.GetCartByID(ctx, cartID)
		if err != nil {
			return orDomainErr(err, domain.ErrCartNotFound)
		}

		countryID, err := destCountryID(ctx, tx, dest)
		if err != nil {
			return err
		}

		var subTotal, shippingFees float64
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
			repriced.ID = it.ID
			if err := tx.UpdateCartItemPricing(ctx, repriced); err != nil {
				return err
			}
			subTotal += repriced.Price * float64(repriced.Quantity)
			shippingFees += repriced.ShippingFee
		}

		total := subTotal + shippingFees
		if err := tx.UpdateCartTotals(ctx, cart.ID, subTotal, shippingFees, total); err != nil {
			return err
		}

		if cart.CouponID == "" {
			return nil
		}

		// Re-apply the coupon against the fresh prices; drop it when it no
		// longer holds.
		coupon, err := tx.GetCouponByID(ctx, cart.CouponID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err == nil && coupon.ActiveAt(time.Now()) {
			items, err := tx.GetCartByID(ctx, cart.ID)
			if err != nil {
				return err
			}
			if discount, matched := couponDiscount(items.Items, coupon.StoreID, coupon.Discount); matched {
				return tx.SetCartCoupon(ctx, cart.ID, coupon.ID, total-discount)
			}
		}
		return tx.ClearCartCoupon(ctx, cart.ID, total)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CartsRefreshed.Inc()
	}

	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, orDomainErr(err, domain.ErrCartNotFound)
	}
	return &cart, nil
}

func (s *cartService) EmptyCart(ctx context.Context, auth domain.AuthContext) error {
	if err := auth.RequireUser(); err != nil {
		return err
	}
	if err := s.repo.DeleteCartByUserID(ctx, auth.UserID); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.CartsEmptied.Inc()
	}
	s.logger.Info().Str("user_id", auth.UserID).Msg("cart emptied")
	return nil
}
