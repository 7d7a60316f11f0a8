package router

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
)

func SetupWishlistRouter(api *echo.Group, wishlistHandler *handler.WishlistHandler) {
	wishlist := api.Group("/wishlist")

	wishlist.GET("/:userId", wishlistHandler.GetWishlist)
	wishlist.POST("", wishlistHandler.AddFromBody)
	wishlist.POST("/:userId/:artworkId", wishlistHandler.AddFromPath)
	wishlist.DELETE("/:userId/:artworkId", wishlistHandler.RemoveFromWishlist)
}
