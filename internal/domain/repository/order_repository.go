package repository

import (
	"context"

	"artifex/internal/domain/entity"
)

// OrderBuilder turns the cart read inside a placement into the order to store.
type OrderBuilder func(cart *entity.Cart) (*entity.Order, error)

// OrderMutator changes an order read inside a cancellation. It reports
// whether the change must be written and the artworks released.
type OrderMutator func(order *entity.Order) (bool, error)

type OrderRepository interface {
	// Place atomically reads the user's cart, stores the built order, marks
	// every ordered artwork unavailable and empties the cart.
	Place(ctx context.Context, userID string, build OrderBuilder) (*entity.Order, error)
	// Cancel atomically applies mutate and, when it asks for a write, marks
	// every ordered artwork available again.
	Cancel(ctx context.Context, id string, mutate OrderMutator) (*entity.Order, error)
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
}
