package entity

import (
	"strings"
	"time"
)

const (
	UserTypeArtist     = "artist"
	UserTypeCollector  = "collector"
	UserTypeEnthusiast = "enthusiast"
)

func IsValidUserType(t string) bool {
	switch t {
	case UserTypeArtist, UserTypeCollector, UserTypeEnthusiast:
		return true
	}
	return false
}

type SocialLinks struct {
	Instagram string `json:"instagram" firestore:"instagram"`
	Twitter   string `json:"twitter" firestore:"twitter"`
	Facebook  string `json:"facebook" firestore:"facebook"`
}

type User struct {
	ID             string      `json:"id" firestore:"id"`
	Username       string      `json:"username" firestore:"username"`
	Email          string      `json:"email" firestore:"email"`
	Password       string      `json:"-" firestore:"password"`
	UserType       string      `json:"userType" firestore:"userType"`
	DisplayName    string      `json:"displayName" firestore:"displayName"`
	Bio            string      `json:"bio" firestore:"bio"`
	ProfilePicture string      `json:"profilePicture" firestore:"profilePicture"`
	Location       string      `json:"location" firestore:"location"`
	Website        string      `json:"website" firestore:"website"`
	SocialLinks    SocialLinks `json:"socialLinks" firestore:"socialLinks"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Name falls back to the username when no display name is set.
func (u *User) Name() string {
	if strings.TrimSpace(u.DisplayName) != "" {
		return u.DisplayName
	}
	return u.Username
}

func (u *User) Role() string {
	return u.UserType
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserSummary is the public projection attached to artworks, reviews and
// orders.
type UserSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Name:           u.Name(),
		ProfilePicture: u.ProfilePicture,
	}
}
