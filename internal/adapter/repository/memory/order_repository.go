package memory

import (
	"context"
	"sort"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type orderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Place(ctx context.Context, userID string, build repository.OrderBuilder) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cart, ok := r.store.carts[userID]
	if !ok {
		cart = entity.NewCart(userID)
	}

	order, err := build(cloneCart(cart))
	if err != nil {
		return nil, err
	}
	if order.ID == "" {
		order.ID = newID()
	}
	now := r.store.now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.store.orders[order.ID] = cloneOrder(order)

	for _, id := range order.ArtworkIDs() {
		if a, ok := r.store.artworks[id]; ok {
			a.Available = false
			a.UpdatedAt = now
		}
	}

	if ok {
		cart.Clear()
		cart.UpdatedAt = now
	}
	return order, nil
}

func (r *orderRepository) Cancel(ctx context.Context, id string, mutate repository.OrderMutator) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}

	order := cloneOrder(stored)
	write, err := mutate(order)
	if err != nil {
		return nil, err
	}
	if !write {
		return order, nil
	}

	now := r.store.now()
	for _, artworkID := range order.ArtworkIDs() {
		if a, ok := r.store.artworks[artworkID]; ok {
			a.Available = true
			a.UpdatedAt = now
		}
	}
	order.UpdatedAt = now
	r.store.orders[id] = cloneOrder(order)
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return cloneOrder(o), nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Order, 0)
	for _, o := range r.store.orders {
		if o.UserID == userID {
			list = append(list, cloneOrder(o))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].OrderNumber > list[j].OrderNumber
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	order.UpdatedAt = r.store.now()
	r.store.orders[order.ID] = cloneOrder(order)
	return nil
}
