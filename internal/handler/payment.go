package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/middleware"
)

type createPaymentRequest struct {
	Method string `json:"method" validate:"required,oneof=Stripe Paypal"`
}

func (h *Handler) createPayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	initiation, err := h.payments.CreatePayment(c.Request().Context(), middleware.AuthFrom(c),
		c.Param("orderId"), domain.PaymentMethod(req.Method))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, initiation)
}

type capturePaymentRequest struct {
	Method      string `json:"method" validate:"required,oneof=Stripe Paypal"`
	ProviderRef string `json:"providerRef" validate:"required"`
}

func (h *Handler) capturePayment(c echo.Context) error {
	var req capturePaymentRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.payments.CapturePayment(c.Request().Context(), middleware.AuthFrom(c),
		c.Param("orderId"), req.ProviderRef, domain.PaymentMethod(req.Method))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
