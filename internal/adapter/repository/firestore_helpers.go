package repository

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"artifex/internal/domain/repository"
)

const (
	artworksCollection      = "artworks"
	usersCollection         = "users"
	userEmailsCollection    = "user_emails"
	userUsernamesCollection = "user_usernames"
	cartsCollection         = "carts"
	ordersCollection        = "orders"
	reviewsCollection       = "reviews"
	wishlistsCollection     = "wishlists"

	// getAllBatchSize bounds a single GetAll round trip.
	getAllBatchSize = 30
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// indexKey makes a value safe to use as a document id.
func indexKey(value string) string {
	return strings.ReplaceAll(strings.ToLower(value), "/", "%2F")
}

// getAll fetches the documents for ids in batches, skipping missing ones.
func getAll(ctx context.Context, client *firestore.Client, collection string, ids []string) ([]*firestore.DocumentSnapshot, error) {
	var snaps []*firestore.DocumentSnapshot
	for i := 0; i < len(ids); i += getAllBatchSize {
		end := i + getAllBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		refs := make([]*firestore.DocumentRef, 0, end-i)
		for _, id := range ids[i:end] {
			refs = append(refs, client.Collection(collection).Doc(id))
		}

		docs, err := client.GetAll(ctx, refs)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if doc != nil && doc.Exists() {
				snaps = append(snaps, doc)
			}
		}
	}
	return snaps, nil
}

type firestoreHealthChecker struct {
	client *firestore.Client
}

func NewFirestoreHealthChecker(client *firestore.Client) repository.HealthChecker {
	return &firestoreHealthChecker{client: client}
}

func (h *firestoreHealthChecker) Ping(ctx context.Context) error {
	_, err := h.client.Collection(artworksCollection).Limit(1).Documents(ctx).Next()
	if err == iterator.Done {
		return nil
	}
	return err
}
