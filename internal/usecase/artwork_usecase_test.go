package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifex/internal/domain/entity"
	"artifex/pkg/errors"
)

func ptr[T any](v T) *T {
	return &v
}

func TestArtworkCreateDefaults(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	artist := e.seedUser(t, "vera", entity.UserTypeArtist)

	view, err := e.artworkUseCase(nil).Create(ctx, CreateArtworkInput{
		Title:      "  Harbour <i>at</i> dusk ",
		ArtistID:   artist.ID,
		Category:   entity.CategoryPainting,
		Price:      80,
		Dimensions: &entity.Dimensions{Height: 40, Width: 60},
		Tags:       []string{"sea", "<b>night</b>"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Harbour at dusk", view.Title)
	assert.Equal(t, entity.DefaultCurrency, view.Currency)
	assert.True(t, view.Available)
	assert.Equal(t, entity.DefaultDimensionUnit, view.Dimensions.Unit)
	assert.Equal(t, []string{"sea", "night"}, view.Tags)
	assert.NotNil(t, view.Images)
	assert.Empty(t, view.ImageURL)
	require.NotNil(t, view.Artist)
	assert.Equal(t, "vera", view.Artist.Username)
}

func TestArtworkCreateValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.artworkUseCase(nil)
	artist := e.seedUser(t, "vera", entity.UserTypeArtist)

	tests := []struct {
		name  string
		input CreateArtworkInput
		code  string
	}{
		{
			name:  "missing title",
			input: CreateArtworkInput{Title: " ", ArtistID: artist.ID, Category: entity.CategoryDigital},
			code:  errors.CodeInvalidArgument,
		},
		{
			name:  "unknown category",
			input: CreateArtworkInput{Title: "x", ArtistID: artist.ID, Category: "tapestry"},
			code:  errors.CodeInvalidArgument,
		},
		{
			name:  "negative price",
			input: CreateArtworkInput{Title: "x", ArtistID: artist.ID, Category: entity.CategoryDigital, Price: -1},
			code:  errors.CodeInvalidArgument,
		},
		{
			name:  "unknown artist",
			input: CreateArtworkInput{Title: "x", ArtistID: "ghost", Category: entity.CategoryDigital},
			code:  errors.CodeNotFound,
		},
	}
	for _, tt := range tests {
		_, err := uc.Create(ctx, tt.input)
		requireCode(t, err, tt.code)
	}
}

func TestArtworkGetByIDCountsViews(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.artworkUseCase(nil)
	artist := e.seedUser(t, "vera", entity.UserTypeArtist)
	require.NoError(t, e.users.Update(ctx, &entity.User{
		ID: artist.ID, Username: artist.Username, Email: artist.Email,
		Password: artist.Password, UserType: artist.UserType, Bio: "Paints harbours",
	}))
	art := e.seedArtwork(t, artist.ID, "a", 10)

	first, err := uc.GetByID(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Views)
	assert.Equal(t, "https://img.test/a.jpg", first.ImageURL)
	require.NotNil(t, first.Artist)
	assert.Equal(t, "Paints harbours", first.Artist.Bio)

	second, err := uc.GetByID(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Views)

	_, err = uc.GetByID(ctx, "missing")
	requireCode(t, err, errors.CodeNotFound)
}

func TestArtworkListFilters(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.artworkUseCase(nil)

	cheap := e.seedArtwork(t, "ana", "cheap", 10)
	mid := e.seedArtwork(t, "ana", "mid", 50)
	pricey := e.seedArtwork(t, "ben", "pricey", 500)
	pricey.IsFeatured = true
	pricey.Category = entity.CategorySculpture
	require.NoError(t, e.artworks.Update(ctx, pricey))

	all, err := uc.List(ctx, entity.ArtworkFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, pricey.ID, all[0].ID)
	assert.Equal(t, cheap.ID, all[2].ID)

	ranged, err := uc.List(ctx, entity.ArtworkFilter{MinPrice: ptr(20.0), MaxPrice: ptr(100.0)})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, mid.ID, ranged[0].ID)

	featured, err := uc.List(ctx, entity.ArtworkFilter{Featured: ptr(true)})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, pricey.ID, featured[0].ID)

	sculptures, err := uc.List(ctx, entity.ArtworkFilter{Category: entity.CategorySculpture})
	require.NoError(t, err)
	assert.Len(t, sculptures, 1)

	limited, err := uc.List(ctx, entity.ArtworkFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	byArtist, err := uc.ListByArtist(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, byArtist, 2)

	_, err = uc.List(ctx, entity.ArtworkFilter{MinPrice: ptr(100.0), MaxPrice: ptr(1.0)})
	requireCode(t, err, errors.CodeInvalidArgument)
}

func TestArtworkSearch(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.artworkUseCase(nil)

	sea := e.seedArtwork(t, "ana", "Seascape", 10)
	tagged := e.seedArtwork(t, "ana", "Untitled", 10)
	tagged.Tags = []string{"ocean", "SEA"}
	require.NoError(t, e.artworks.Update(ctx, tagged))
	e.seedArtwork(t, "ana", "Forest", 10)

	found, err := uc.Search(ctx, "sea", 0)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, tagged.ID, found[0].ID)
	assert.Equal(t, sea.ID, found[1].ID)

	limited, err := uc.Search(ctx, "SEA", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = uc.Search(ctx, "   ", 0)
	requireCode(t, err, errors.CodeInvalidArgument)
}

func TestArtworkUpdate(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.artworkUseCase(nil)
	art := e.seedArtwork(t, "ana", "a", 10)

	view, err := uc.Update(ctx, art.ID, UpdateArtworkInput{
		Price:     ptr(25.5),
		Available: ptr(false),
		Currency:  ptr("eur"),
	})
	require.NoError(t, err)
	assert.Equal(t, 25.5, view.Price)
	assert.False(t, view.Available)
	assert.Equal(t, "EUR", view.Currency)
	assert.Equal(t, "a", view.Title)

	_, err = uc.Update(ctx, art.ID, UpdateArtworkInput{Category: ptr("tapestry")})
	requireCode(t, err, errors.CodeInvalidArgument)
	_, err = uc.Update(ctx, art.ID, UpdateArtworkInput{Price: ptr(-3.0)})
	requireCode(t, err, errors.CodeInvalidArgument)
	_, err = uc.Update(ctx, art.ID, UpdateArtworkInput{Title: ptr("")})
	requireCode(t, err, errors.CodeInvalidArgument)
	_, err = uc.Update(ctx, "missing", UpdateArtworkInput{})
	requireCode(t, err, errors.CodeNotFound)
}

func TestArtworkDeleteRemovesReviews(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	art := e.seedArtwork(t, "ana", "a", 10)
	u := e.seedUser(t, "ben", entity.UserTypeCollector)
	_, err := e.reviewUseCase().Create(ctx, CreateReviewInput{ArtworkID: art.ID, UserID: u.ID, Rating: 4})
	require.NoError(t, err)

	require.NoError(t, e.artworkUseCase(nil).Delete(ctx, art.ID))

	_, err = e.artworks.GetByID(ctx, art.ID)
	requireCode(t, err, errors.CodeNotFound)
	reviews, err := e.reviews.ListByArtwork(ctx, art.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	requireCode(t, e.artworkUseCase(nil).Delete(ctx, art.ID), errors.CodeNotFound)
}

func TestArtworkAddImage(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	art := e.seedArtwork(t, "ana", "a", 10)

	_, err := e.artworkUseCase(nil).AddImage(ctx, art.ID, "image/png", strings.NewReader("png"))
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)

	images := &fakeImages{}
	view, err := e.artworkUseCase(images).AddImage(ctx, art.ID, "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"png"}, images.uploaded)
	require.Len(t, view.Images, 2)
	assert.Equal(t, "https://images.test/"+art.ID+"/image/png", view.Images[1])
	assert.Equal(t, "https://img.test/a.jpg", view.ImageURL)

	_, err = e.artworkUseCase(images).AddImage(ctx, "missing", "image/png", strings.NewReader("png"))
	requireCode(t, err, errors.CodeNotFound)
}
