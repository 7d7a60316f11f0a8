package entity

import (
	"strings"
	"time"
)

const (
	CategoryPainting    = "painting"
	CategorySculpture   = "sculpture"
	CategoryPhotography = "photography"
	CategoryDigital     = "digital"
	CategoryMixedMedia  = "mixed-media"
	CategoryOther       = "other"

	DefaultCurrency      = "USD"
	DefaultDimensionUnit = "cm"
)

var ArtworkCategories = []string{
	CategoryPainting,
	CategorySculpture,
	CategoryPhotography,
	CategoryDigital,
	CategoryMixedMedia,
	CategoryOther,
}

func IsValidCategory(category string) bool {
	for _, c := range ArtworkCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Dimensions struct {
	Height float64 `json:"height" firestore:"height"`
	Width  float64 `json:"width" firestore:"width"`
	Depth  float64 `json:"depth" firestore:"depth"`
	Unit   string  `json:"unit" firestore:"unit"`
}

type Artwork struct {
	ID            string      `json:"id" firestore:"id"`
	Title         string      `json:"title" firestore:"title"`
	Description   string      `json:"description" firestore:"description"`
	ArtistID      string      `json:"artistId" firestore:"artistId"`
	Images        []string    `json:"images" firestore:"images"`
	Category      string      `json:"category" firestore:"category"`
	Medium        string      `json:"medium" firestore:"medium"`
	Dimensions    *Dimensions `json:"dimensions,omitempty" firestore:"dimensions,omitempty"`
	Price         float64     `json:"price" firestore:"price"`
	Currency      string      `json:"currency" firestore:"currency"`
	Available     bool        `json:"available" firestore:"available"`
	IsFeatured    bool        `json:"isFeatured" firestore:"isFeatured"`
	CreationDate  *time.Time  `json:"creationDate,omitempty" firestore:"creationDate,omitempty"`
	Tags          []string    `json:"tags" firestore:"tags"`
	Views         int         `json:"views" firestore:"views"`
	AverageRating float64     `json:"averageRating" firestore:"averageRating"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ImageURL is the cover image, i.e. the first one.
func (a *Artwork) ImageURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// ArtworkFilter drives catalog listing. Nil pointers and empty strings are
// not applied.
type ArtworkFilter struct {
	Category string
	Medium   string
	ArtistID string
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

func (f ArtworkFilter) Matches(a *Artwork) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Medium != "" && a.Medium != f.Medium {
		return false
	}
	if f.ArtistID != "" && a.ArtistID != f.ArtistID {
		return false
	}
	if f.Featured != nil && a.IsFeatured != *f.Featured {
		return false
	}
	if f.MinPrice != nil && a.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && a.Price > *f.MaxPrice {
		return false
	}
	return true
}

// MatchesText reports a case-insensitive substring match of query against the
// title, description, medium or any tag.
func (a *Artwork) MatchesText(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	fields := append([]string{a.Title, a.Description, a.Medium}, a.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
