// Package memory keeps every collection in process. It backs the test suite
// and STORE_DRIVER=memory for local runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"artifex/internal/domain/entity"
)

// Store holds all collections behind one lock so that multi-document
// operations are atomic.
type Store struct {
	mu sync.RWMutex

	artworks  map[string]*entity.Artwork
	users     map[string]*entity.User
	carts     map[string]*entity.Cart
	orders    map[string]*entity.Order
	reviews   map[string]*entity.Review
	wishlists map[string]*entity.Wishlist

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		artworks:  make(map[string]*entity.Artwork),
		users:     make(map[string]*entity.User),
		carts:     make(map[string]*entity.Cart),
		orders:    make(map[string]*entity.Order),
		reviews:   make(map[string]*entity.Review),
		wishlists: make(map[string]*entity.Wishlist),
		now:       time.Now,
	}
}

// SetClock replaces the time source used for timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func newID() string {
	return uuid.New().String()
}

func cloneArtwork(a *entity.Artwork) *entity.Artwork {
	c := *a
	c.Images = append([]string(nil), a.Images...)
	c.Tags = append([]string(nil), a.Tags...)
	if a.Dimensions != nil {
		d := *a.Dimensions
		c.Dimensions = &d
	}
	if a.CreationDate != nil {
		t := *a.CreationDate
		c.CreationDate = &t
	}
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneCart(cart *entity.Cart) *entity.Cart {
	c := *cart
	c.Items = append([]entity.CartItem{}, cart.Items...)
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem{}, o.Items...)
	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r
	return &c
}

func cloneWishlist(w *entity.Wishlist) *entity.Wishlist {
	c := *w
	c.ArtworkIDs = append([]string{}, w.ArtworkIDs...)
	return &c
}

func sortArtworksNewestFirst(list []*entity.Artwork) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
