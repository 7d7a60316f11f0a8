package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

func (r *firestoreWishlistRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wishlist, error) {
	doc, err := r.client.Collection(wishlistsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Wishlist", err)
		}
		return nil, errors.Internal("Failed to get wishlist", err)
	}

	var wishlist entity.Wishlist
	if err := doc.DataTo(&wishlist); err != nil {
		return nil, errors.Internal("Failed to parse wishlist data", err)
	}

	return &wishlist, nil
}

func (r *firestoreWishlistRepository) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	wishlist.ID = wishlist.UserID
	now := time.Now()
	if wishlist.CreatedAt.IsZero() {
		wishlist.CreatedAt = now
	}
	wishlist.UpdatedAt = now

	_, err := r.client.Collection(wishlistsCollection).Doc(wishlist.UserID).Set(ctx, wishlist)
	if err != nil {
		return errors.Internal("Failed to save wishlist", err)
	}

	return nil
}
