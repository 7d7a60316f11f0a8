package handler

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/usecase"
	"artifex/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addToCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ArtworkID string `json:"artworkId" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

type updateCartItemRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ArtworkID string `json:"artworkId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type clearCartResponse struct {
	Message string            `json:"message"`
	Cart    *usecase.CartView `json:"cart"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartUseCase.GetCart(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.cartUseCase.AddItem(c.Request().Context(), req.UserID, req.ArtworkID, quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	cart, err := h.cartUseCase.UpdateItemQuantity(c.Request().Context(), req.UserID, req.ArtworkID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.cartUseCase.RemoveItem(c.Request().Context(), c.Param("userId"), c.Param("artworkId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	cart, err := h.cartUseCase.Clear(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, clearCartResponse{
		Message: "Cart cleared successfully",
		Cart:    cart,
	})
}
