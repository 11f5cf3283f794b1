package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/middleware"
)

type upsertCouponRequest struct {
	ID       string    `json:"id" validate:"omitempty,uuid"`
	Code     string    `json:"code" validate:"required,alphanum,min=3,max=32"`
	Discount float64   `json:"discount" validate:"required,gte=1,lte=99"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	EndsAt   time.Time `json:"endsAt" validate:"required"`
}

func (h *Handler) upsertCoupon(c echo.Context) error {
	var req upsertCouponRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	coupon, err := h.coupons.UpsertCoupon(c.Request().Context(), middleware.AuthFrom(c), c.Param("storeSlug"), domain.Coupon{
		ID:       req.ID,
		Code:     req.Code,
		Discount: req.Discount,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupon)
}

func (h *Handler) listStoreCoupons(c echo.Context) error {
	coupons, err := h.coupons.ListStoreCoupons(c.Request().Context(), middleware.AuthFrom(c), c.Param("storeSlug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupons)
}

func (h *Handler) getCoupon(c echo.Context) error {
	coupon, err := h.coupons.GetCoupon(c.Request().Context(), c.Param("couponId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coupon)
}

func (h *Handler) deleteCoupon(c echo.Context) error {
	err := h.coupons.DeleteCoupon(c.Request().Context(), middleware.AuthFrom(c), c.Param("storeSlug"), c.Param("couponId"))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *Handler) applyCoupon(c echo.Context) error {
	var req applyCouponRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	applied, err := h.coupons.ApplyCoupon(c.Request().Context(), c.Param("cartId"), req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applied)
}

func (h *Handler) removeCoupon(c echo.Context) error {
	cart, err := h.coupons.RemoveCoupon(c.Request().Context(), c.Param("cartId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}
