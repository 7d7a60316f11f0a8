package router

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
)

func SetupReviewRouter(api *echo.Group, reviewHandler *handler.ReviewHandler) {
	reviews := api.Group("/reviews")

	reviews.GET("/artwork/:artworkId", reviewHandler.ListByArtwork)
	reviews.POST("", reviewHandler.CreateReview)
	reviews.PUT("/:id", reviewHandler.UpdateReview)
	reviews.DELETE("/:id", reviewHandler.DeleteReview)
}
