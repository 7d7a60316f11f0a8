package memory

import (
	"context"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type wishlistRepository struct {
	store *Store
}

func NewWishlistRepository(store *Store) repository.WishlistRepository {
	return &wishlistRepository{store: store}
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.wishlists[userID]
	if !ok {
		return nil, errors.NotFound("Wishlist", nil)
	}
	return cloneWishlist(w), nil
}

func (r *wishlistRepository) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wishlist.ID = wishlist.UserID
	now := r.store.now()
	if wishlist.CreatedAt.IsZero() {
		wishlist.CreatedAt = now
	}
	wishlist.UpdatedAt = now
	r.store.wishlists[wishlist.UserID] = cloneWishlist(wishlist)
	return nil
}
