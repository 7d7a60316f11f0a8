package memory

import (
	"context"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type cartRepository struct {
	store *Store
}

func NewCartRepository(store *Store) repository.CartRepository {
	return &cartRepository{store: store}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.carts[userID]
	if !ok {
		return nil, errors.NotFound("Cart", nil)
	}
	return cloneCart(c), nil
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cart.ID = cart.UserID
	now := r.store.now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	r.store.carts[cart.UserID] = cloneCart(cart)
	return nil
}
