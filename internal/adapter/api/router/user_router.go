package router

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
	"artifex/internal/adapter/api/middleware"
)

func SetupUserRouter(
	api *echo.Group,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	authRateLimit echo.MiddlewareFunc,
) {
	users := api.Group("/users")

	users.POST("/register", authHandler.Register, authRateLimit)
	users.POST("/login", authHandler.Login, authRateLimit)

	users.GET("/me", authHandler.Me, authMiddleware.Authenticate)
	users.PUT("/me/password", userHandler.ChangePassword, authMiddleware.Authenticate)

	users.GET("/artists", userHandler.ListArtists)

	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)
}
