package models

// Comment moderation states. Pending comments are invisible to readers
// until an admin approves them.
const (
	CommentPending  = "pending"
	CommentApproved = "approved"
)

type Comment struct {
	ID           string    `json:"_id"`
	PostID       string    `json:"postId"`
	Author       string    `json:"author"`
	Email        string    `json:"email,omitempty"`
	Content      string    `json:"content"`
	Status       string    `json:"status,omitempty"`
	IsAdminReply bool      `json:"isAdminReply"`
	CreatedAt    string    `json:"createdAt"`
	Replies      []Comment `json:"replies,omitempty"`
}

// NewComment is the reader-submitted comment payload.
type NewComment struct {
	PostID  string `json:"postId"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// CommentList is the paginated envelope from the admin moderation endpoint.
type CommentList struct {
	Comments    []Comment `json:"comments"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Total       int       `json:"total"`
}
