package router

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
)

func SetupCartRouter(api *echo.Group, cartHandler *handler.CartHandler) {
	cart := api.Group("/cart")

	cart.GET("/:userId", cartHandler.GetCart)
	cart.POST("", cartHandler.AddItem)
	cart.PUT("", cartHandler.UpdateItem)
	cart.DELETE("/:userId/:artworkId", cartHandler.RemoveItem)
	cart.DELETE("/:userId", cartHandler.Clear)
}
