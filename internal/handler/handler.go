// Package handler is the HTTP surface: echo routes over the domain
// services, plus the provider webhook endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bazario/bazario/internal/billing"
	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/middleware"
	"github.com/bazario/bazario/internal/service"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	cart     domain.CartService
	coupons  domain.CouponService
	checkout domain.CheckoutService
	orders   domain.OrderService
	payments domain.PaymentService
	stripe   *billing.StripeProvider
	webhooks *service.WebhookService

	logger       zerolog.Logger
	secureCookie bool
}

// New creates a Handler. stripe may be nil when the Stripe webhook endpoint
// is not exposed.
func New(
	cart domain.CartService,
	coupons domain.CouponService,
	checkout domain.CheckoutService,
	orders domain.OrderService,
	payments domain.PaymentService,
	stripe *billing.StripeProvider,
	webhooks *service.WebhookService,
	logger zerolog.Logger,
	secureCookie bool,
) *Handler {
	return &Handler{
		cart:         cart,
		coupons:      coupons,
		checkout:     checkout,
		orders:       orders,
		payments:     payments,
		stripe:       stripe,
		webhooks:     webhooks,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes mounts every route on the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = &requestValidator{v: validator.New()}
	e.HTTPErrorHandler = h.errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", middleware.Auth())

	api.POST("/user/country", h.setUserCountry)

	api.GET("/cart", h.getCart)
	api.POST("/cart", h.saveCart)
	api.DELETE("/cart", h.emptyCart)
	api.POST("/cart/:cartId/refresh", h.refreshCart)
	api.POST("/cart/:cartId/coupon", h.applyCoupon)
	api.DELETE("/cart/:cartId/coupon", h.removeCoupon)

	api.GET("/coupons/:couponId", h.getCoupon)
	api.GET("/stores/:storeSlug/coupons", h.listStoreCoupons)
	api.POST("/stores/:storeSlug/coupons", h.upsertCoupon)
	api.DELETE("/stores/:storeSlug/coupons/:couponId", h.deleteCoupon)

	api.POST("/checkout", h.placeOrder)
	api.GET("/orders/:orderId", h.getOrder)
	api.PATCH("/stores/:storeId/order-groups/:groupId/status", h.updateGroupStatus)
	api.PATCH("/stores/:storeId/order-items/:itemId/status", h.updateItemStatus)

	api.POST("/orders/:orderId/payments", h.createPayment)
	api.POST("/orders/:orderId/payments/capture", h.capturePayment)

	if h.stripe != nil {
		e.POST("/webhooks/stripe", h.stripeWebhook)
	}
}

// requestValidator adapts validator/v10 to echo's Validator interface.
type requestValidator struct {
	v *validator.Validate
}

func (r *requestValidator) Validate(i any) error {
	if err := r.v.Struct(i); err != nil {
		return domain.Invalid("", err.Error())
	}
	return nil
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorHandler translates domain error codes into HTTP statuses. Internal
// details are logged, never returned.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	code := domain.EINTERNAL
	message := "An internal error occurred."

	var httpErr *echo.HTTPError
	var domainErr *domain.Error
	switch {
	case errors.As(err, &domainErr):
		code = domainErr.Code
		switch domainErr.Code {
		case domain.EINVALID:
			status = http.StatusBadRequest
		case domain.EUNAUTHORIZED:
			status = http.StatusUnauthorized
		case domain.EFORBIDDEN:
			status = http.StatusForbidden
		case domain.ENOTFOUND:
			status = http.StatusNotFound
		case domain.ECONFLICT:
			status = http.StatusConflict
		case domain.EPAYMENT:
			status = http.StatusPaymentRequired
		}
		if status != http.StatusInternalServerError {
			message = domainErr.Message
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		code = domain.EINVALID
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if status >= 500 {
		h.logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	if err := c.JSON(status, body); err != nil {
		h.logger.Error().Err(err).Msg("error response not written")
	}
}
