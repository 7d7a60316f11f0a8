package handler

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/usecase"
	"artifex/pkg/errors"
	"artifex/pkg/response"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

type addToWishlistRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ArtworkID string `json:"artworkId" validate:"required"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	wishlist, err := h.wishlistUseCase.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, wishlist)
}

// AddFromBody accepts {userId, artworkId}; AddFromPath takes both from the URL.
func (h *WishlistHandler) AddFromBody(c echo.Context) error {
	var req addToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	return h.add(c, req.UserID, req.ArtworkID)
}

func (h *WishlistHandler) AddFromPath(c echo.Context) error {
	return h.add(c, c.Param("userId"), c.Param("artworkId"))
}

func (h *WishlistHandler) add(c echo.Context, userID, artworkID string) error {
	if userID == "" || artworkID == "" {
		return response.Error(c, errors.BadRequest("User ID and artwork ID are required", nil))
	}

	wishlist, err := h.wishlistUseCase.Add(c.Request().Context(), userID, artworkID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, wishlist)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	wishlist, err := h.wishlistUseCase.Remove(c.Request().Context(), c.Param("userId"), c.Param("artworkId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, wishlist)
}
