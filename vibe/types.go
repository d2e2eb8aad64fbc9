// Package vibe defines the content data model consumed by the share-image
// pipeline: vibes, their authors, and emoji ratings.
//
// types.go contains the plain data types. All of them are read-only inputs
// to a render; nothing in this package mutates them.
package vibe

import (
	"strings"
	"time"
	"unicode"
)

// Vibe is a user-authored content post. Immutable for the duration of one
// render.
type Vibe struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Author      User      `json:"author"`
	Ratings     []Rating  `json:"ratings,omitempty"`
}

// User identifies a vibe author or rating author. Read-only input.
type User struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Rating is an emoji reaction with a bounded numeric value and optional
// free-text review.
type Rating struct {
	Emoji     string    `json:"emoji"`
	Value     float64   `json:"value"` // bounded 1-5
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Author    User      `json:"author"`
}

// DisplayName returns the best available name for the user, preferring
// username, then "First Last", then either name alone.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	first := strings.TrimSpace(u.FirstName)
	last := strings.TrimSpace(u.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return "someone"
	}
}

// Initials returns up to two uppercase runes derived from the display name,
// used for the avatar placeholder circle.
func (u User) Initials() string {
	words := strings.Fields(u.DisplayName())
	var initials []rune
	for _, word := range words {
		for _, r := range word {
			initials = append(initials, unicode.ToUpper(r))
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

// HasReviews reports whether any rating carries review text.
func (v *Vibe) HasReviews() bool {
	for _, r := range v.Ratings {
		if strings.TrimSpace(r.Review) != "" {
			return true
		}
	}
	return false
}

// FirstReview returns the first non-empty review text, or "".
func (v *Vibe) FirstReview() string {
	for _, r := range v.Ratings {
		if text := strings.TrimSpace(r.Review); text != "" {
			return text
		}
	}
	return ""
}
