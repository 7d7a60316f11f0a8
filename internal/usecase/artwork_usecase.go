package usecase

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type ArtworkUseCase struct {
	artworkRepo repository.ArtworkRepository
	userRepo    repository.UserRepository
	images      ImageStorage
	populate    populator
}

// NewArtworkUseCase builds the catalog use case. images may be nil, in which
// case image uploads are refused.
func NewArtworkUseCase(
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
	images ImageStorage,
) *ArtworkUseCase {
	return &ArtworkUseCase{
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
		images:      images,
		populate:    populator{artworkRepo: artworkRepo, userRepo: userRepo},
	}
}

type CreateArtworkInput struct {
	Title        string
	Description  string
	ArtistID     string
	Images       []string
	Category     string
	Medium       string
	Dimensions   *entity.Dimensions
	Price        float64
	Currency     string
	Available    *bool
	IsFeatured   bool
	CreationDate *time.Time
	Tags         []string
}

// UpdateArtworkInput carries a partial update. Nil fields are left as they are.
type UpdateArtworkInput struct {
	Title        *string
	Description  *string
	Images       []string
	Category     *string
	Medium       *string
	Dimensions   *entity.Dimensions
	Price        *float64
	Currency     *string
	Available    *bool
	IsFeatured   *bool
	CreationDate *time.Time
	Tags         []string
}

func (uc *ArtworkUseCase) List(ctx context.Context, filter entity.ArtworkFilter) ([]*ArtworkView, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, errors.BadRequest("minPrice cannot be greater than maxPrice", nil)
	}

	artworks, err := uc.artworkRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.populate.artworkViews(ctx, artworks)
}

// GetByID counts a view and returns the artwork with the artist's bio.
func (uc *ArtworkUseCase) GetByID(ctx context.Context, id string) (*ArtworkView, error) {
	artwork, err := uc.artworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.artworkRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	artwork.Views++

	artist, err := uc.userRepo.GetByID(ctx, artwork.ArtistID)
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	view := newArtworkView(artwork, artist)
	if view.Artist != nil {
		view.Artist.Bio = artist.Bio
	}
	return view, nil
}

func (uc *ArtworkUseCase) ListByArtist(ctx context.Context, artistID string) ([]*ArtworkView, error) {
	return uc.List(ctx, entity.ArtworkFilter{ArtistID: artistID})
}

func (uc *ArtworkUseCase) Search(ctx context.Context, query string, limit int) ([]*ArtworkView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.BadRequest("Search query is required", nil)
	}

	artworks, err := uc.artworkRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return uc.populate.artworkViews(ctx, artworks)
}

func (uc *ArtworkUseCase) Create(ctx context.Context, input CreateArtworkInput) (*ArtworkView, error) {
	title := sanitize(input.Title)
	if title == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if !entity.IsValidCategory(input.Category) {
		return nil, errors.BadRequest("Invalid category", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}

	artist, err := uc.userRepo.GetByID(ctx, input.ArtistID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFound("Artist", err)
		}
		return nil, err
	}

	artwork := &entity.Artwork{
		Title:        title,
		Description:  sanitize(input.Description),
		ArtistID:     artist.ID,
		Images:       nonNil(input.Images),
		Category:     input.Category,
		Medium:       sanitize(input.Medium),
		Dimensions:   normalizeDimensions(input.Dimensions),
		Price:        input.Price,
		Currency:     normalizeCurrency(input.Currency),
		Available:    true,
		IsFeatured:   input.IsFeatured,
		CreationDate: input.CreationDate,
		Tags:         sanitizeAll(input.Tags),
	}
	if input.Available != nil {
		artwork.Available = *input.Available
	}

	if err := uc.artworkRepo.Create(ctx, artwork); err != nil {
		return nil, err
	}
	return newArtworkView(artwork, artist), nil
}

func (uc *ArtworkUseCase) Update(ctx context.Context, id string, input UpdateArtworkInput) (*ArtworkView, error) {
	artwork, err := uc.artworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := sanitize(*input.Title)
		if title == "" {
			return nil, errors.BadRequest("Title cannot be empty", nil)
		}
		artwork.Title = title
	}
	if input.Description != nil {
		artwork.Description = sanitize(*input.Description)
	}
	if input.Images != nil {
		artwork.Images = input.Images
	}
	if input.Category != nil {
		if !entity.IsValidCategory(*input.Category) {
			return nil, errors.BadRequest("Invalid category", nil)
		}
		artwork.Category = *input.Category
	}
	if input.Medium != nil {
		artwork.Medium = sanitize(*input.Medium)
	}
	if input.Dimensions != nil {
		artwork.Dimensions = normalizeDimensions(input.Dimensions)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, errors.BadRequest("Price cannot be negative", nil)
		}
		artwork.Price = *input.Price
	}
	if input.Currency != nil {
		artwork.Currency = normalizeCurrency(*input.Currency)
	}
	if input.Available != nil {
		artwork.Available = *input.Available
	}
	if input.IsFeatured != nil {
		artwork.IsFeatured = *input.IsFeatured
	}
	if input.CreationDate != nil {
		artwork.CreationDate = input.CreationDate
	}
	if input.Tags != nil {
		artwork.Tags = sanitizeAll(input.Tags)
	}

	if err := uc.artworkRepo.Update(ctx, artwork); err != nil {
		return nil, err
	}

	views, err := uc.populate.artworkViews(ctx, []*entity.Artwork{artwork})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Delete removes the artwork and every review of it.
func (uc *ArtworkUseCase) Delete(ctx context.Context, id string) error {
	return uc.artworkRepo.Delete(ctx, id)
}

// AddImage uploads an image and appends its URL to the artwork.
func (uc *ArtworkUseCase) AddImage(ctx context.Context, id, contentType string, file io.Reader) (*ArtworkView, error) {
	if uc.images == nil {
		return nil, errors.New(errors.CodeInternal, "Image storage is not configured", http.StatusServiceUnavailable, nil)
	}

	artwork, err := uc.artworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.images.UploadImage(ctx, artwork.ID, contentType, file)
	if err != nil {
		return nil, errors.Internal("Failed to upload image", err)
	}

	artwork.Images = append(artwork.Images, url)
	if err := uc.artworkRepo.Update(ctx, artwork); err != nil {
		return nil, err
	}

	views, err := uc.populate.artworkViews(ctx, []*entity.Artwork{artwork})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func normalizeDimensions(d *entity.Dimensions) *entity.Dimensions {
	if d == nil {
		return nil
	}
	out := *d
	if out.Unit == "" {
		out.Unit = entity.DefaultDimensionUnit
	}
	return &out
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return entity.DefaultCurrency
	}
	return c
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
