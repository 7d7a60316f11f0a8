package usecase

import (
	"context"
	"time"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
)

// ArtworkView is an artwork with its cover image and artist attached.
type ArtworkView struct {
	*entity.Artwork
	ImageURL string              `json:"imageUrl"`
	Artist   *entity.UserSummary `json:"artist,omitempty"`
}

type CartItemView struct {
	ArtworkID  string       `json:"artworkId"`
	Quantity   int          `json:"quantity"`
	PriceAtAdd float64      `json:"priceAtAdd"`
	Artwork    *ArtworkView `json:"artwork"`
}

type CartView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Items     []CartItemView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"itemCount"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type OrderItemView struct {
	ArtworkID string       `json:"artworkId"`
	Quantity  int          `json:"quantity"`
	Price     float64      `json:"price"`
	Artwork   *ArtworkView `json:"artwork"`
}

// OrderView shadows the stored items with populated ones.
type OrderView struct {
	*entity.Order
	Items []OrderItemView     `json:"items"`
	User  *entity.UserSummary `json:"user,omitempty"`
}

type ReviewView struct {
	*entity.Review
	User *entity.UserSummary `json:"user,omitempty"`
}

type WishlistView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Artworks  []*ArtworkView `json:"artworks"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// populator resolves artwork and user references in batches.
type populator struct {
	artworkRepo repository.ArtworkRepository
	userRepo    repository.UserRepository
}

func (p populator) users(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	if len(ids) == 0 {
		return map[string]*entity.User{}, nil
	}
	return p.userRepo.GetByIDs(ctx, unique(ids))
}

func (p populator) artworkViews(ctx context.Context, artworks []*entity.Artwork) ([]*ArtworkView, error) {
	artistIDs := make([]string, 0, len(artworks))
	for _, a := range artworks {
		artistIDs = append(artistIDs, a.ArtistID)
	}
	artists, err := p.users(ctx, artistIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*ArtworkView, 0, len(artworks))
	for _, a := range artworks {
		views = append(views, newArtworkView(a, artists[a.ArtistID]))
	}
	return views, nil
}

// artworksByID loads the given artworks with their artists. Missing ids are
// absent from the result.
func (p populator) artworksByID(ctx context.Context, ids []string) (map[string]*ArtworkView, error) {
	if len(ids) == 0 {
		return map[string]*ArtworkView{}, nil
	}
	artworks, err := p.artworkRepo.GetByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}

	list := make([]*entity.Artwork, 0, len(artworks))
	for _, a := range artworks {
		list = append(list, a)
	}
	views, err := p.artworkViews(ctx, list)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*ArtworkView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	return byID, nil
}

func (p populator) cart(ctx context.Context, cart *entity.Cart) (*CartView, error) {
	artworks, err := p.artworksByID(ctx, cart.ArtworkIDs())
	if err != nil {
		return nil, err
	}

	items := make([]CartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemView{
			ArtworkID:  item.ArtworkID,
			Quantity:   item.Quantity,
			PriceAtAdd: item.PriceAtAdd,
			Artwork:    artworks[item.ArtworkID],
		})
	}

	return &CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     items,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

func (p populator) orders(ctx context.Context, orders []*entity.Order) ([]*OrderView, error) {
	var artworkIDs, userIDs []string
	for _, o := range orders {
		artworkIDs = append(artworkIDs, o.ArtworkIDs()...)
		userIDs = append(userIDs, o.UserID)
	}

	artworks, err := p.artworksByID(ctx, artworkIDs)
	if err != nil {
		return nil, err
	}
	users, err := p.users(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemView, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, OrderItemView{
				ArtworkID: item.ArtworkID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Artwork:   artworks[item.ArtworkID],
			})
		}

		var summary *entity.UserSummary
		if u, ok := users[o.UserID]; ok {
			summary = u.Summary()
			summary.Email = u.Email
		}
		views = append(views, &OrderView{Order: o, Items: items, User: summary})
	}
	return views, nil
}

func (p populator) order(ctx context.Context, order *entity.Order) (*OrderView, error) {
	views, err := p.orders(ctx, []*entity.Order{order})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (p populator) reviews(ctx context.Context, reviews []*entity.Review) ([]*ReviewView, error) {
	userIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		userIDs = append(userIDs, r.UserID)
	}
	users, err := p.users(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, &ReviewView{Review: r, User: users[r.UserID].Summary()})
	}
	return views, nil
}

func newArtworkView(a *entity.Artwork, artist *entity.User) *ArtworkView {
	return &ArtworkView{
		Artwork:  a,
		ImageURL: a.ImageURL(),
		Artist:   artist.Summary(),
	}
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
