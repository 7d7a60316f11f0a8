package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
	"artifex/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	artworkRepo repository.ArtworkRepository
	userRepo    repository.UserRepository
	recorder    RatingRecorder
	populate    populator
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
	recorder RatingRecorder,
) *ReviewUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
		recorder:    recorder,
		populate:    populator{artworkRepo: artworkRepo, userRepo: userRepo},
	}
}

type CreateReviewInput struct {
	ArtworkID string
	UserID    string
	Rating    int
	Comment   string
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// ListByArtwork returns the artwork's reviews, newest first.
func (uc *ReviewUseCase) ListByArtwork(ctx context.Context, artworkID string) ([]*ReviewView, error) {
	reviews, err := uc.reviewRepo.ListByArtwork(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	return uc.populate.reviews(ctx, reviews)
}

func (uc *ReviewUseCase) Create(ctx context.Context, input CreateReviewInput) (*ReviewView, error) {
	if !entity.IsValidRating(input.Rating) {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	if _, err := uc.artworkRepo.GetByID(ctx, input.ArtworkID); err != nil {
		return nil, err
	}
	reviewer, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		ArtworkID: input.ArtworkID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   sanitize(input.Comment),
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.recomputeRating(ctx, review.ArtworkID)
	return &ReviewView{Review: review, User: reviewer.Summary()}, nil
}

func (uc *ReviewUseCase) Update(ctx context.Context, id string, input UpdateReviewInput) (*ReviewView, error) {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Rating != nil {
		if !entity.IsValidRating(*input.Rating) {
			return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = sanitize(*input.Comment)
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	uc.recomputeRating(ctx, review.ArtworkID)
	views, err := uc.populate.reviews(ctx, []*entity.Review{review})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (uc *ReviewUseCase) Delete(ctx context.Context, id string) error {
	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	artworkID := review.ArtworkID

	if err := uc.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.recomputeRating(ctx, artworkID)
	return nil
}

// recomputeRating rebuilds the artwork's average from all of its reviews.
// Failures are logged and counted but never returned: the next review write
// repairs a stale average.
func (uc *ReviewUseCase) recomputeRating(ctx context.Context, artworkID string) {
	reviews, err := uc.reviewRepo.ListByArtwork(ctx, artworkID)
	if err == nil {
		ratings := make([]int, 0, len(reviews))
		for _, r := range reviews {
			ratings = append(ratings, r.Rating)
		}
		err = uc.artworkRepo.SetAverageRating(ctx, artworkID, AverageRating(ratings))
	}
	if err != nil {
		uc.recorder.IncRatingFailure()
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("artwork_id", artworkID).
			Msg("failed to recompute average rating")
	}
}

// AverageRating is the mean rounded half away from zero to one decimal, or 0
// with no ratings.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).InexactFloat64()
}
