package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type firestoreArtworkRepository struct {
	client *firestore.Client
}

func NewFirestoreArtworkRepository(client *firestore.Client) repository.ArtworkRepository {
	return &firestoreArtworkRepository{
		client: client,
	}
}

func (r *firestoreArtworkRepository) Create(ctx context.Context, artwork *entity.Artwork) error {
	if artwork.ID == "" {
		artwork.ID = r.client.Collection(artworksCollection).NewDoc().ID
	}

	now := time.Now()
	if artwork.CreatedAt.IsZero() {
		artwork.CreatedAt = now
	}
	artwork.UpdatedAt = now

	_, err := r.client.Collection(artworksCollection).Doc(artwork.ID).Set(ctx, artwork)
	if err != nil {
		return errors.Internal("Failed to create artwork", err)
	}

	return nil
}

func (r *firestoreArtworkRepository) GetByID(ctx context.Context, id string) (*entity.Artwork, error) {
	doc, err := r.client.Collection(artworksCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Artwork", err)
		}
		return nil, errors.Internal("Failed to get artwork", err)
	}

	var artwork entity.Artwork
	if err := doc.DataTo(&artwork); err != nil {
		return nil, errors.Internal("Failed to parse artwork data", err)
	}

	return &artwork, nil
}

func (r *firestoreArtworkRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Artwork, error) {
	docs, err := getAll(ctx, r.client, artworksCollection, ids)
	if err != nil {
		return nil, errors.Internal("Failed to get artworks", err)
	}

	artworks := make(map[string]*entity.Artwork, len(docs))
	for _, doc := range docs {
		var artwork entity.Artwork
		if err := doc.DataTo(&artwork); err != nil {
			return nil, errors.Internal("Failed to parse artwork data", err)
		}
		artworks[doc.Ref.ID] = &artwork
	}

	return artworks, nil
}

// List pushes the equality filters to Firestore. The price range and limit
// are applied while iterating so the createdAt ordering needs no range index.
func (r *firestoreArtworkRepository) List(ctx context.Context, filter entity.ArtworkFilter) ([]*entity.Artwork, error) {
	query := r.client.Collection(artworksCollection).Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Medium != "" {
		query = query.Where("medium", "==", filter.Medium)
	}
	if filter.ArtistID != "" {
		query = query.Where("artistId", "==", filter.ArtistID)
	}
	if filter.Featured != nil {
		query = query.Where("isFeatured", "==", *filter.Featured)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query, filter.Limit, filter.Matches)
}

// Search scans newest first since Firestore has no substring operator.
func (r *firestoreArtworkRepository) Search(ctx context.Context, text string, limit int) ([]*entity.Artwork, error) {
	query := r.client.Collection(artworksCollection).OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query, limit, func(a *entity.Artwork) bool {
		return a.MatchesText(text)
	})
}

func (r *firestoreArtworkRepository) collect(ctx context.Context, query firestore.Query, limit int, keep func(*entity.Artwork) bool) ([]*entity.Artwork, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	artworks := make([]*entity.Artwork, 0)
	for limit <= 0 || len(artworks) < limit {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate artworks", err)
		}

		var artwork entity.Artwork
		if err := doc.DataTo(&artwork); err != nil {
			return nil, errors.Internal("Failed to parse artwork data", err)
		}
		if keep(&artwork) {
			artworks = append(artworks, &artwork)
		}
	}

	return artworks, nil
}

func (r *firestoreArtworkRepository) Update(ctx context.Context, artwork *entity.Artwork) error {
	artwork.UpdatedAt = time.Now()

	_, err := r.client.Collection(artworksCollection).Doc(artwork.ID).Set(ctx, artwork)
	if err != nil {
		return errors.Internal("Failed to update artwork", err)
	}

	return nil
}

func (r *firestoreArtworkRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection(artworksCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Artwork", err)
		}
		return errors.Internal("Failed to increment artwork views", err)
	}

	return nil
}

func (r *firestoreArtworkRepository) SetAverageRating(ctx context.Context, id string, rating float64) error {
	_, err := r.client.Collection(artworksCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "averageRating", Value: rating},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Artwork", err)
		}
		return errors.Internal("Failed to update artwork rating", err)
	}

	return nil
}

func (r *firestoreArtworkRepository) Delete(ctx context.Context, id string) error {
	artworkRef := r.client.Collection(artworksCollection).Doc(id)
	reviewsQuery := r.client.Collection(reviewsCollection).Where("artworkId", "==", id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(artworkRef); err != nil {
			if isNotFound(err) {
				return errors.NotFound("Artwork", err)
			}
			return errors.Internal("Failed to get artwork", err)
		}

		reviews, err := tx.Documents(reviewsQuery).GetAll()
		if err != nil {
			return errors.Internal("Failed to get artwork reviews", err)
		}

		for _, review := range reviews {
			if err := tx.Delete(review.Ref); err != nil {
				return err
			}
		}
		return tx.Delete(artworkRef)
	})

	return errors.Wrap(err, "Failed to delete artwork")
}
