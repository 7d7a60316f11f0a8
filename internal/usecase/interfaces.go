package usecase

import (
	"context"
	"io"
)

type TokenIssuer interface {
	Generate(userID string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type ImageStorage interface {
	UploadImage(ctx context.Context, artworkID, contentType string, file io.Reader) (string, error)
}

// OrderRecorder counts order workflow outcomes.
type OrderRecorder interface {
	IncOrderCreated()
	IncOrderCancelled()
}

// RatingRecorder counts failed average rating recomputations.
type RatingRecorder interface {
	IncRatingFailure()
}

type noopRecorder struct{}

func (noopRecorder) IncOrderCreated()   {}
func (noopRecorder) IncOrderCancelled() {}
func (noopRecorder) IncRatingFailure()  {}
