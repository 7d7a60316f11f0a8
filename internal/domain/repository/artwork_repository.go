package repository

import (
	"context"

	"artifex/internal/domain/entity"
)

type ArtworkRepository interface {
	Create(ctx context.Context, artwork *entity.Artwork) error
	GetByID(ctx context.Context, id string) (*entity.Artwork, error)
	// GetByIDs skips ids that do not exist.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Artwork, error)
	List(ctx context.Context, filter entity.ArtworkFilter) ([]*entity.Artwork, error)
	Search(ctx context.Context, query string, limit int) ([]*entity.Artwork, error)
	Update(ctx context.Context, artwork *entity.Artwork) error
	IncrementViews(ctx context.Context, id string) error
	SetAverageRating(ctx context.Context, id string, rating float64) error
	// Delete removes the artwork together with its reviews.
	Delete(ctx context.Context, id string) error
}
