package handler

import (
	"artifex/internal/domain/repository"
	"artifex/internal/usecase"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Artwork  *ArtworkHandler
	Auth     *AuthHandler
	User     *UserHandler
	Cart     *CartHandler
	Order    *OrderHandler
	Review   *ReviewHandler
	Wishlist *WishlistHandler
	Health   *HealthHandler
}

func Setup(
	artworkUseCase *usecase.ArtworkUseCase,
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	cartUseCase *usecase.CartUseCase,
	orderUseCase *usecase.OrderUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	wishlistUseCase *usecase.WishlistUseCase,
	store repository.HealthChecker,
) *Handlers {
	return &Handlers{
		Artwork:  NewArtworkHandler(artworkUseCase),
		Auth:     NewAuthHandler(authUseCase),
		User:     NewUserHandler(userUseCase),
		Cart:     NewCartHandler(cartUseCase),
		Order:    NewOrderHandler(orderUseCase),
		Review:   NewReviewHandler(reviewUseCase),
		Wishlist: NewWishlistHandler(wishlistUseCase),
		Health:   NewHealthHandler(store),
	}
}
