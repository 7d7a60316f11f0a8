package memory

import (
	"context"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type artworkRepository struct {
	store *Store
}

func NewArtworkRepository(store *Store) repository.ArtworkRepository {
	return &artworkRepository{store: store}
}

func (r *artworkRepository) Create(ctx context.Context, artwork *entity.Artwork) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if artwork.ID == "" {
		artwork.ID = newID()
	}
	now := r.store.now()
	if artwork.CreatedAt.IsZero() {
		artwork.CreatedAt = now
	}
	artwork.UpdatedAt = now

	r.store.artworks[artwork.ID] = cloneArtwork(artwork)
	return nil
}

func (r *artworkRepository) GetByID(ctx context.Context, id string) (*entity.Artwork, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.artworks[id]
	if !ok {
		return nil, errors.NotFound("Artwork", nil)
	}
	return cloneArtwork(a), nil
}

func (r *artworkRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Artwork, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[string]*entity.Artwork, len(ids))
	for _, id := range ids {
		if a, ok := r.store.artworks[id]; ok {
			result[id] = cloneArtwork(a)
		}
	}
	return result, nil
}

func (r *artworkRepository) List(ctx context.Context, filter entity.ArtworkFilter) ([]*entity.Artwork, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Artwork, 0)
	for _, a := range r.store.artworks {
		if filter.Matches(a) {
			list = append(list, cloneArtwork(a))
		}
	}
	sortArtworksNewestFirst(list)
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

func (r *artworkRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Artwork, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	list := make([]*entity.Artwork, 0)
	for _, a := range r.store.artworks {
		if a.MatchesText(query) {
			list = append(list, cloneArtwork(a))
		}
	}
	sortArtworksNewestFirst(list)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *artworkRepository) Update(ctx context.Context, artwork *entity.Artwork) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.artworks[artwork.ID]; !ok {
		return errors.NotFound("Artwork", nil)
	}
	artwork.UpdatedAt = r.store.now()
	r.store.artworks[artwork.ID] = cloneArtwork(artwork)
	return nil
}

func (r *artworkRepository) IncrementViews(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.artworks[id]
	if !ok {
		return errors.NotFound("Artwork", nil)
	}
	a.Views++
	return nil
}

func (r *artworkRepository) SetAverageRating(ctx context.Context, id string, rating float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.artworks[id]
	if !ok {
		return errors.NotFound("Artwork", nil)
	}
	a.AverageRating = rating
	a.UpdatedAt = r.store.now()
	return nil
}

func (r *artworkRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.artworks[id]; !ok {
		return errors.NotFound("Artwork", nil)
	}
	delete(r.store.artworks, id)
	for reviewID, review := range r.store.reviews {
		if review.ArtworkID == id {
			delete(r.store.reviews, reviewID)
		}
	}
	return nil
}
