package models

import (
	"time"
)

// Article workflow statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPremium  = "premium"
	StatusDeclined = "decline"
)

// ValidStatuses defines allowed article workflow statuses
var ValidStatuses = map[string]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusPremium:  true,
	StatusDeclined: true,
}

// Article represents a news article in the system
type Article struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Body          string    `json:"body" db:"body"`
	Image         string    `json:"image,omitempty" db:"image"`
	AuthorEmail   string    `json:"author_email" db:"author_email"`
	AuthorName    string    `json:"author_name,omitempty" db:"author_name"`
	Publisher     string    `json:"publisher" db:"publisher"`
	Tags          []string  `json:"tags" db:"-"` // Stored as JSONB in DB
	Status        string    `json:"status" db:"status"`
	IsPremium     bool      `json:"is_premium" db:"is_premium"`
	DeclineReason string    `json:"decline_reason,omitempty" db:"decline_reason"`
	Views         int64     `json:"views" db:"views"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ArticlePatch carries the content fields an author may change.
// Workflow status, premium flag and views are never patched this way.
type ArticlePatch struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Image     string   `json:"image"`
	Publisher string   `json:"publisher"`
	Tags      []string `json:"tags"`
}

// ArticleFilter is a composable predicate over the article collection.
// Zero values mean "no constraint on that field".
type ArticleFilter struct {
	Search    string   // case-insensitive title substring
	Publisher string   // case-insensitive publisher substring
	Tags      []string // match if the article carries ANY of these
}

// PublisherCount is one row of the per-publisher aggregation
type PublisherCount struct {
	Publisher string `json:"publisher"`
	Count     int64  `json:"count"`
}

// TagCount is one row of the per-tag aggregation. An article with N tags
// contributes one count to each of its N tags.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}
