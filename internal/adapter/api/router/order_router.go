package router

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
)

func SetupOrderRouter(api *echo.Group, orderHandler *handler.OrderHandler) {
	orders := api.Group("/orders")

	orders.GET("/user/:userId", orderHandler.ListUserOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("", orderHandler.CreateOrder)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)
	orders.PUT("/:id/payment", orderHandler.UpdatePaymentStatus)
	orders.PUT("/:id/cancel", orderHandler.CancelOrder)
}
