package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

// existingArtworks reads the artwork documents inside tx and returns the refs
// that still exist. Deleted artworks are skipped.
func (r *firestoreOrderRepository) existingArtworks(tx *firestore.Transaction, ids []string) ([]*firestore.DocumentRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(artworksCollection).Doc(id))
	}

	docs, err := tx.GetAll(refs)
	if err != nil {
		return nil, errors.Internal("Failed to get ordered artworks", err)
	}

	existing := make([]*firestore.DocumentRef, 0, len(docs))
	for _, doc := range docs {
		if doc != nil && doc.Exists() {
			existing = append(existing, doc.Ref)
		}
	}
	return existing, nil
}

func setAvailability(tx *firestore.Transaction, refs []*firestore.DocumentRef, available bool, now time.Time) error {
	for _, ref := range refs {
		err := tx.Update(ref, []firestore.Update{
			{Path: "available", Value: available},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Place runs checkout as one transaction. Firestore may retry the function,
// so build must not have side effects beyond the order it returns.
func (r *firestoreOrderRepository) Place(ctx context.Context, userID string, build repository.OrderBuilder) (*entity.Order, error) {
	cartRef := r.client.Collection(cartsCollection).Doc(userID)

	var placed *entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		cart := entity.NewCart(userID)
		cartExists := false

		doc, err := tx.Get(cartRef)
		switch {
		case err == nil:
			if err := doc.DataTo(cart); err != nil {
				return errors.Internal("Failed to parse cart data", err)
			}
			cartExists = true
		case !isNotFound(err):
			return errors.Internal("Failed to get cart", err)
		}

		artworkRefs, err := r.existingArtworks(tx, cart.ArtworkIDs())
		if err != nil {
			return err
		}

		order, err := build(cart)
		if err != nil {
			return err
		}

		orderRef := r.client.Collection(ordersCollection).NewDoc()
		order.ID = orderRef.ID
		now := time.Now()
		order.CreatedAt = now
		order.UpdatedAt = now

		if err := tx.Create(orderRef, order); err != nil {
			return err
		}
		if err := setAvailability(tx, artworkRefs, false, now); err != nil {
			return err
		}
		if cartExists {
			err := tx.Update(cartRef, []firestore.Update{
				{Path: "items", Value: []entity.CartItem{}},
				{Path: "updatedAt", Value: now},
			})
			if err != nil {
				return err
			}
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to place order")
	}

	return placed, nil
}

func (r *firestoreOrderRepository) Cancel(ctx context.Context, id string, mutate repository.OrderMutator) (*entity.Order, error) {
	orderRef := r.client.Collection(ordersCollection).Doc(id)

	var cancelled *entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(orderRef)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Order", err)
			}
			return errors.Internal("Failed to get order", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return errors.Internal("Failed to parse order data", err)
		}

		write, err := mutate(&order)
		if err != nil {
			return err
		}
		cancelled = &order
		if !write {
			return nil
		}

		artworkRefs, err := r.existingArtworks(tx, order.ArtworkIDs())
		if err != nil {
			return err
		}

		now := time.Now()
		order.UpdatedAt = now
		if err := setAvailability(tx, artworkRefs, true, now); err != nil {
			return err
		}
		return tx.Set(orderRef, &order)
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to cancel order")
	}

	return cancelled, nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	iter := r.client.Collection(ordersCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	orders := make([]*entity.Order, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()

	_, err := r.client.Collection(ordersCollection).Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}
