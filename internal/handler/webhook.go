package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/bazario/internal/domain"
)

// stripeWebhook verifies and reconciles Stripe payment intent events.
// Stripe retries on non-2xx, so processing failures return 500.
func (h *Handler) stripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<16))
	if err != nil {
		return domain.Invalid("", "Unreadable webhook payload.")
	}

	event, err := h.stripe.ParseWebhookEvent(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn().Err(err).Msg("stripe webhook rejected")
		return c.NoContent(http.StatusBadRequest)
	}

	if err := h.webhooks.HandleStripeEvent(c.Request().Context(), *event); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
