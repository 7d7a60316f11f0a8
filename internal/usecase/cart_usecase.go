package usecase

import (
	"context"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	artworkRepo repository.ArtworkRepository
	populate    populator
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		artworkRepo: artworkRepo,
		populate:    populator{artworkRepo: artworkRepo, userRepo: userRepo},
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		cart = entity.NewCart(userID)
		if err := uc.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return uc.populate.cart(ctx, cart)
}

// AddItem adds quantity of an available artwork. A repeated artwork grows
// its existing line and keeps the price captured the first time.
func (uc *CartUseCase) AddItem(ctx context.Context, userID, artworkID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	artwork, err := uc.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if !artwork.Available {
		return nil, errors.InvalidState("Artwork is not available")
	}

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		cart = entity.NewCart(userID)
	}

	cart.Add(artwork.ID, quantity, artwork.Price)
	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.populate.cart(ctx, cart)
}

func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, userID, artworkID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.Find(artworkID)
	if item == nil {
		return nil, errors.NotFound("Item in cart", nil)
	}
	item.Quantity = quantity

	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.populate.cart(ctx, cart)
}

// RemoveItem requires the cart to exist. Removing an artwork that is not in
// it is not an error.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, artworkID string) (*CartView, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Remove(artworkID)
	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.populate.cart(ctx, cart)
}

// Clear empties the cart but keeps it.
func (uc *CartUseCase) Clear(ctx context.Context, userID string) (*CartView, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Clear()
	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.populate.cart(ctx, cart)
}
