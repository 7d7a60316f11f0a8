package repository

import (
	"context"

	"artifex/internal/domain/entity"
)

type ReviewRepository interface {
	// Create fails with a conflict error if the user already reviewed the artwork.
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByArtwork(ctx context.Context, artworkID string) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
}
