package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"artifex/internal/adapter/repository/memory"
	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

// fakeHasher keeps tests fast; bcrypt is covered in the auth package.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) bool {
	return hash == "hashed:"+password
}

type fakeTokens struct{}

func (fakeTokens) Generate(userID string) (string, error) {
	return "token-" + userID, nil
}

type countingRecorder struct {
	mu             sync.Mutex
	created        int
	cancelled      int
	ratingFailures int
}

func (r *countingRecorder) IncOrderCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *countingRecorder) IncOrderCancelled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled++
}

func (r *countingRecorder) IncRatingFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratingFailures++
}

type fakeImages struct {
	uploaded []string
}

func (f *fakeImages) UploadImage(ctx context.Context, artworkID, contentType string, file io.Reader) (string, error) {
	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, string(body))
	return "https://images.test/" + artworkID + "/" + contentType, nil
}

type env struct {
	store    *memory.Store
	artworks repository.ArtworkRepository
	users    repository.UserRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	reviews  repository.ReviewRepository
	wishes   repository.WishlistRepository
	recorder *countingRecorder
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()

	// Every timestamp is one second after the previous one so that
	// newest-first ordering is deterministic.
	var mu sync.Mutex
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	})

	return &env{
		store:    store,
		artworks: memory.NewArtworkRepository(store),
		users:    memory.NewUserRepository(store),
		carts:    memory.NewCartRepository(store),
		orders:   memory.NewOrderRepository(store),
		reviews:  memory.NewReviewRepository(store),
		wishes:   memory.NewWishlistRepository(store),
		recorder: &countingRecorder{},
	}
}

func (e *env) cartUseCase() *CartUseCase {
	return NewCartUseCase(e.carts, e.artworks, e.users)
}

func (e *env) orderUseCase() *OrderUseCase {
	return NewOrderUseCase(e.orders, e.artworks, e.users, e.recorder)
}

func (e *env) reviewUseCase() *ReviewUseCase {
	return NewReviewUseCase(e.reviews, e.artworks, e.users, e.recorder)
}

func (e *env) artworkUseCase(images ImageStorage) *ArtworkUseCase {
	return NewArtworkUseCase(e.artworks, e.users, images)
}

func (e *env) wishlistUseCase() *WishlistUseCase {
	return NewWishlistUseCase(e.wishes, e.artworks, e.users)
}

func (e *env) seedUser(t *testing.T, username, userType string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:    username,
		Email:       strings.ToLower(username) + "@example.com",
		Password:    "hashed:password",
		UserType:    userType,
		DisplayName: strings.ToUpper(username[:1]) + username[1:],
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) seedArtwork(t *testing.T, artistID, title string, price float64) *entity.Artwork {
	t.Helper()
	a := &entity.Artwork{
		Title:     title,
		ArtistID:  artistID,
		Images:    []string{"https://img.test/" + title + ".jpg"},
		Category:  entity.CategoryPainting,
		Medium:    "oil",
		Price:     price,
		Currency:  entity.DefaultCurrency,
		Available: true,
		Tags:      []string{},
	}
	require.NoError(t, e.artworks.Create(context.Background(), a))
	return a
}

func (e *env) artwork(t *testing.T, id string) *entity.Artwork {
	t.Helper()
	a, err := e.artworks.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, code), "expected %s, got %v", code, err)
}
