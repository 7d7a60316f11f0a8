package router

import (
	"github.com/labstack/echo/v4"

	"artifex/internal/adapter/api/handler"
)

func SetupArtworkRouter(api *echo.Group, artworkHandler *handler.ArtworkHandler) {
	artworks := api.Group("/artworks")

	artworks.GET("", artworkHandler.ListArtworks)
	artworks.GET("/search", artworkHandler.SearchArtworks)
	artworks.GET("/artist/:artistId", artworkHandler.ListByArtist)
	artworks.GET("/:id", artworkHandler.GetArtwork)
	artworks.POST("", artworkHandler.CreateArtwork)
	artworks.PUT("/:id", artworkHandler.UpdateArtwork)
	artworks.DELETE("/:id", artworkHandler.DeleteArtwork)
	artworks.POST("/:id/images", artworkHandler.UploadImage)
}
