package memory

import (
	"context"
	"sort"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type reviewRepository struct {
	store *Store
}

func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	review.ID = entity.ReviewID(review.ArtworkID, review.UserID)
	if _, ok := r.store.reviews[review.ID]; ok {
		return errors.Conflict("You have already reviewed this artwork")
	}
	now := r.store.now()
	review.CreatedAt = now
	review.UpdatedAt = now
	r.store.reviews[review.ID] = cloneReview(review)
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	review, ok := r.store.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	return cloneReview(review), nil
}

func (r *reviewRepository) ListByArtwork(ctx context.Context, artworkID string) ([]*entity.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Review, 0)
	for _, review := range r.store.reviews {
		if review.ArtworkID == artworkID {
			list = append(list, cloneReview(review))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reviews[review.ID]; !ok {
		return errors.NotFound("Review", nil)
	}
	review.UpdatedAt = r.store.now()
	r.store.reviews[review.ID] = cloneReview(review)
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reviews[id]; !ok {
		return errors.NotFound("Review", nil)
	}
	delete(r.store.reviews, id)
	return nil
}
