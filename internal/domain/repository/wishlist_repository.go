package repository

import (
	"context"

	"artifex/internal/domain/entity"
)

type WishlistRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error)
	Save(ctx context.Context, wishlist *entity.Wishlist) error
}
