package entity

import "time"

// Wishlist is keyed by its owner: ID always equals UserID.
type Wishlist struct {
	ID         string    `json:"id" firestore:"id"`
	UserID     string    `json:"userId" firestore:"userId"`
	ArtworkIDs []string  `json:"artworkIds" firestore:"artworkIds"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func NewWishlist(userID string) *Wishlist {
	now := time.Now()
	return &Wishlist{
		ID:         userID,
		UserID:     userID,
		ArtworkIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (w *Wishlist) Contains(artworkID string) bool {
	for _, id := range w.ArtworkIDs {
		if id == artworkID {
			return true
		}
	}
	return false
}

// Add appends artworkID and reports whether it was missing.
func (w *Wishlist) Add(artworkID string) bool {
	if w.Contains(artworkID) {
		return false
	}
	w.ArtworkIDs = append(w.ArtworkIDs, artworkID)
	return true
}

func (w *Wishlist) Remove(artworkID string) {
	kept := w.ArtworkIDs[:0]
	for _, id := range w.ArtworkIDs {
		if id != artworkID {
			kept = append(kept, id)
		}
	}
	w.ArtworkIDs = kept
}
