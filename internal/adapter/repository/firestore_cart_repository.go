package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	doc, err := r.client.Collection(cartsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Cart", err)
		}
		return nil, errors.Internal("Failed to get cart", err)
	}

	var cart entity.Cart
	if err := doc.DataTo(&cart); err != nil {
		return nil, errors.Internal("Failed to parse cart data", err)
	}

	return &cart, nil
}

func (r *firestoreCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cart.ID = cart.UserID
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	_, err := r.client.Collection(cartsCollection).Doc(cart.UserID).Set(ctx, cart)
	if err != nil {
		return errors.Internal("Failed to save cart", err)
	}

	return nil
}
