package models

import "time"

// Article is the client-side snapshot of a published post. The backend owns
// the record; this struct only mirrors what the API returns.
type Article struct {
	ID            string   `json:"_id,omitempty"`
	LegacyID      string   `json:"id,omitempty"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featuredImage"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	ReadTime      int      `json:"readTime"`
	PublishedAt   string   `json:"publishedAt"`
	Author        string   `json:"author"`
	IsPublished   bool     `json:"isPublished"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// Key returns whichever identifier the backend populated. Older records
// carry a plain id instead of the Mongo-style one.
func (a Article) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return a.LegacyID
}

// PublishedDate formats publishedAt for display, falling back to the raw
// value when it is not an ISO date.
func (a Article) PublishedDate() string {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return a.PublishedAt
}

// PostList is the paginated posts envelope returned by the list endpoint.
type PostList struct {
	Posts       []Article `json:"posts"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Total       int       `json:"total"`
}
