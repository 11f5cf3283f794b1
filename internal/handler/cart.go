package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazario/bazario/internal/cookie"
	"github.com/bazario/bazario/internal/domain"
	"github.com/bazario/bazario/internal/middleware"
)

type setCountryRequest struct {
	Name   string `json:"name" validate:"required"`
	Code   string `json:"code" validate:"required,len=2"`
	City   string `json:"city"`
	Region string `json:"region"`
}

func (h *Handler) setUserCountry(c echo.Context) error {
	var req setCountryRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	info := domain.CountryInfo{Name: req.Name, Code: req.Code, City: req.City, Region: req.Region}
	if err := cookie.SetUserCountry(c.Response(), info, h.secureCookie); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

// destination reads the userCountry cookie; absent means an unresolved
// destination and pricing falls back to store defaults.
func destination(c echo.Context) domain.CountryInfo {
	info, _ := cookie.GetUserCountry(c.Request())
	return info
}

type cartLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	VariantID string `json:"variantId" validate:"required,uuid"`
	SizeID    string `json:"sizeId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type saveCartRequest struct {
	Lines []cartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (h *Handler) saveCart(c echo.Context) error {
	var req saveCartRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "Invalid request body.")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lines := make([]domain.CartLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.CartLine{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			SizeID:    l.SizeID,
			Quantity:  l.Quantity,
		}
	}

	cart, err := h.cart.SaveCart(c.Request().Context(), middleware.AuthFrom(c), destination(c), lines)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) getCart(c echo.Context) error {
	cart, err := h.cart.GetCart(c.Request().Context(), middleware.AuthFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) refreshCart(c echo.Context) error {
	cart, err := h.cart.RefreshCart(c.Request().Context(), c.Param("cartId"), destination(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) emptyCart(c echo.Context) error {
	if err := h.cart.EmptyCart(c.Request().Context(), middleware.AuthFrom(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
