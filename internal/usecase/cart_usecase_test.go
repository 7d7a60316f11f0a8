package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifex/pkg/errors"
)

func TestCartGetCreatesEmptyCart(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	view, err := e.cartUseCase().GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", view.UserID)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	_, err = e.carts.GetByUserID(ctx, "user-1")
	assert.NoError(t, err, "cart is persisted on first access")
}

func TestCartAddToEmptyCart(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	artist := e.seedUser(t, "vera", "artist")
	art := e.seedArtwork(t, artist.ID, "dawn", 250)

	view, err := e.cartUseCase().AddItem(ctx, "buyer", art.ID, 2)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	item := view.Items[0]
	assert.Equal(t, art.ID, item.ArtworkID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 250.0, item.PriceAtAdd)
	require.NotNil(t, item.Artwork)
	assert.Equal(t, "dawn", item.Artwork.Title)
	require.NotNil(t, item.Artwork.Artist)
	assert.Equal(t, "vera", item.Artwork.Artist.Username)
	assert.Equal(t, 500.0, view.Total)
	assert.Equal(t, 2, view.ItemCount)
}

func TestCartAddSameArtworkMergesLines(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	art := e.seedArtwork(t, "artist", "dusk", 10.5)
	uc := e.cartUseCase()

	_, err := uc.AddItem(ctx, "buyer", art.ID, 1)
	require.NoError(t, err)
	view, err := uc.AddItem(ctx, "buyer", art.ID, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
	assert.Equal(t, 42.0, view.Total)
}

func TestCartKeepsPriceAtAdd(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	art := e.seedArtwork(t, "artist", "noon", 100)
	uc := e.cartUseCase()

	_, err := uc.AddItem(ctx, "buyer", art.ID, 1)
	require.NoError(t, err)

	art.Price = 900
	require.NoError(t, e.artworks.Update(ctx, art))

	view, err := uc.AddItem(ctx, "buyer", art.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, view.Items[0].PriceAtAdd)
	assert.Equal(t, 200.0, view.Total)
}

func TestCartAddErrors(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	uc := e.cartUseCase()

	_, err := uc.AddItem(ctx, "buyer", "missing", 1)
	requireCode(t, err, errors.CodeNotFound)

	sold := e.seedArtwork(t, "artist", "sold", 10)
	sold.Available = false
	require.NoError(t, e.artworks.Update(ctx, sold))
	_, err = uc.AddItem(ctx, "buyer", sold.ID, 1)
	requireCode(t, err, errors.CodeInvalidState)

	art := e.seedArtwork(t, "artist", "fine", 10)
	_, err = uc.AddItem(ctx, "buyer", art.ID, 0)
	requireCode(t, err, errors.CodeInvalidArgument)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	art := e.seedArtwork(t, "artist", "a", 5)
	other := e.seedArtwork(t, "artist", "b", 5)
	uc := e.cartUseCase()

	_, err := uc.UpdateItemQuantity(ctx, "buyer", art.ID, 2)
	requireCode(t, err, errors.CodeNotFound)

	_, err = uc.AddItem(ctx, "buyer", art.ID, 1)
	require.NoError(t, err)

	_, err = uc.UpdateItemQuantity(ctx, "buyer", art.ID, 0)
	requireCode(t, err, errors.CodeInvalidArgument)

	_, err = uc.UpdateItemQuantity(ctx, "buyer", other.ID, 2)
	requireCode(t, err, errors.CodeNotFound)

	view, err := uc.UpdateItemQuantity(ctx, "buyer", art.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, view.Items[0].Quantity)
	assert.Equal(t, 5.0, view.Items[0].PriceAtAdd)
}

func TestCartRemoveAndClear(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	a := e.seedArtwork(t, "artist", "a", 5)
	b := e.seedArtwork(t, "artist", "b", 7)
	uc := e.cartUseCase()

	_, err := uc.RemoveItem(ctx, "buyer", a.ID)
	requireCode(t, err, errors.CodeNotFound)
	_, err = uc.Clear(ctx, "buyer")
	requireCode(t, err, errors.CodeNotFound)

	_, err = uc.AddItem(ctx, "buyer", a.ID, 1)
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "buyer", b.ID, 1)
	require.NoError(t, err)

	view, err := uc.RemoveItem(ctx, "buyer", a.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, b.ID, view.Items[0].ArtworkID)

	view, err = uc.RemoveItem(ctx, "buyer", "not-in-cart")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = uc.Clear(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	cart, err := e.carts.GetByUserID(ctx, "buyer")
	require.NoError(t, err, "clearing keeps the cart")
	assert.Empty(t, cart.Items)
}

func TestCartShowsDeletedArtworkAsNil(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	art := e.seedArtwork(t, "artist", "gone", 5)
	uc := e.cartUseCase()

	_, err := uc.AddItem(ctx, "buyer", art.ID, 1)
	require.NoError(t, err)
	require.NoError(t, e.artworks.Delete(ctx, art.ID))

	view, err := uc.GetCart(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Nil(t, view.Items[0].Artwork)
}
