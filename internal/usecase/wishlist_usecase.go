package usecase

import (
	"context"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	artworkRepo  repository.ArtworkRepository
	populate     populator
}

func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		artworkRepo:  artworkRepo,
		populate:     populator{artworkRepo: artworkRepo, userRepo: userRepo},
	}
}

// Get returns the user's wishlist, creating an empty one on first access.
func (uc *WishlistUseCase) Get(ctx context.Context, userID string) (*WishlistView, error) {
	wishlist, err := uc.wishlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		wishlist = entity.NewWishlist(userID)
		if err := uc.wishlistRepo.Save(ctx, wishlist); err != nil {
			return nil, err
		}
	}
	return uc.view(ctx, wishlist)
}

func (uc *WishlistUseCase) Add(ctx context.Context, userID, artworkID string) (*WishlistView, error) {
	if _, err := uc.artworkRepo.GetByID(ctx, artworkID); err != nil {
		return nil, err
	}

	wishlist, err := uc.wishlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errors.CodeNotFound) {
			return nil, err
		}
		wishlist = entity.NewWishlist(userID)
	}

	if !wishlist.Add(artworkID) {
		return nil, errors.Conflict("Artwork is already in the wishlist")
	}
	if err := uc.wishlistRepo.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return uc.view(ctx, wishlist)
}

// Remove requires the wishlist to exist. Removing an artwork that is not in
// it is not an error.
func (uc *WishlistUseCase) Remove(ctx context.Context, userID, artworkID string) (*WishlistView, error) {
	wishlist, err := uc.wishlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist.Remove(artworkID)
	if err := uc.wishlistRepo.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return uc.view(ctx, wishlist)
}

// view drops artworks that no longer exist.
func (uc *WishlistUseCase) view(ctx context.Context, wishlist *entity.Wishlist) (*WishlistView, error) {
	byID, err := uc.populate.artworksByID(ctx, wishlist.ArtworkIDs)
	if err != nil {
		return nil, err
	}

	artworks := make([]*ArtworkView, 0, len(wishlist.ArtworkIDs))
	for _, id := range wishlist.ArtworkIDs {
		if a, ok := byID[id]; ok {
			artworks = append(artworks, a)
		}
	}

	return &WishlistView{
		ID:        wishlist.ID,
		UserID:    wishlist.UserID,
		Artworks:  artworks,
		CreatedAt: wishlist.CreatedAt,
		UpdatedAt: wishlist.UpdatedAt,
	}, nil
}
