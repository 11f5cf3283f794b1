package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/middleware"
)

type placeOrderRequest struct {
	CartID    string `json:"cartId" validate:"required,uuid"`
	CountryID string `json:"countryId" validate:"required,uuid"`
}

func (h *Handler) placeOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.checkout.PlaceOrder(c.Request().Context(), middleware.AuthFrom(c), req.CartID, req.CountryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) getOrder(c echo.Context) error {
	order, err := h.orders.GetOrder(c.Request().Context(), middleware.AuthFrom(c), c.Param("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateGroupStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.orders.UpdateGroupStatus(c.Request().Context(), middleware.AuthFrom(c),
		c.Param("storeId"), c.Param("groupId"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
}

func (h *Handler) updateItemStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.orders.UpdateItemStatus(c.Request().Context(), middleware.AuthFrom(c),
		c.Param("storeId"), c.Param("itemId"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
}
