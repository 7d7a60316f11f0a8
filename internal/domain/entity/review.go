package entity

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id" firestore:"id"`
	ArtworkID string    `json:"artworkId" firestore:"artworkId"`
	UserID    string    `json:"userId" firestore:"userId"`
	Rating    int       `json:"rating" firestore:"rating"`
	Comment   string    `json:"comment" firestore:"comment"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ReviewID is the document key for a user's review of an artwork. One user
// can hold at most one review per artwork.
func ReviewID(artworkID, userID string) string {
	return fmt.Sprintf("%s_%s", artworkID, userID)
}

func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
