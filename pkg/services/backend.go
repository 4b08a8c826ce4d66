package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"philoblog/pkg/config"
	"philoblog/pkg/models"
)

// ErrNetwork stands in for any transport-level failure. The reader-facing
// pages surface it as a retryable message; there is no retry, timeout or
// cancellation below it, just a single attempt per call.
var ErrNetwork = errors.New("network error, please try again")

// APIError carries the backend's own message for a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

var backendClient = &http.Client{}

type apiMessage struct {
	Message string `json:"message"`
}

// apiRequest performs one call against the configured blog API and decodes
// the JSON response into out when non-nil. Non-2xx responses become an
// APIError using the body's message field when present.
func apiRequest(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	endpoint := config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := backendClient.Do(req)
	if err != nil {
		return ErrNetwork
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ErrNetwork
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg apiMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Message == "" {
			msg.Message = fmt.Sprintf("server error (status %d)", resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func apiJSON(ctx context.Context, method, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return apiRequest(ctx, method, path, nil, "application/json", bytes.NewReader(body), out)
}

// PostQuery narrows the posts listing. Zero values are omitted; the "All"
// category means no category filter, matching the backend contract.
type PostQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

func (q PostQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" && q.Category != "All" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func FetchPosts(ctx context.Context, q PostQuery) (*models.PostList, error) {
	var list models.PostList
	if err := apiRequest(ctx, http.MethodGet, "/posts", q.values(), "", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// FetchFeaturedPosts returns the first page of published posts.
func FetchFeaturedPosts(ctx context.Context, limit int) (*models.PostList, error) {
	return FetchPosts(ctx, PostQuery{Page: 1, Limit: limit})
}

func FetchPost(ctx context.Context, id string) (*models.Article, error) {
	var post models.Article
	if err := apiRequest(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, "", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// FetchAdminPosts lists every post, published or not.
func FetchAdminPosts(ctx context.Context) ([]models.Article, error) {
	var posts []models.Article
	if err := apiRequest(ctx, http.MethodGet, "/posts/admin", nil, "", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostForm is the create/update payload. The backend expects multipart form
// encoding because of the optional featured image upload.
type PostForm struct {
	Title       string
	Excerpt     string
	Content     string
	Category    string
	Author      string
	Tags        string
	ReadTime    int
	IsPublished bool
	Image       *multipart.FileHeader
}

func (f PostForm) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       f.Title,
		"excerpt":     f.Excerpt,
		"content":     f.Content,
		"category":    f.Category,
		"author":      f.Author,
		"tags":        f.Tags,
		"readTime":    strconv.Itoa(f.ReadTime),
		"isPublished": strconv.FormatBool(f.IsPublished),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if f.Image != nil {
		src, err := f.Image.Open()
		if err != nil {
			return nil, "", err
		}
		defer src.Close()

		part, err := w.CreateFormFile("featuredImage", f.Image.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func CreatePost(ctx context.Context, form PostForm) (*models.Article, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var post models.Article
	if err := apiRequest(ctx, http.MethodPost, "/posts", nil, contentType, body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func UpdatePost(ctx context.Context, id string, form PostForm) (*models.Article, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}
	var post models.Article
	if err := apiRequest(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), nil, contentType, body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func DeletePost(ctx context.Context, id string) error {
	return apiRequest(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, "", nil, nil)
}

// Subscribe registers an email for the newsletter and returns the backend's
// confirmation message.
func Subscribe(ctx context.Context, email string) (string, error) {
	var resp apiMessage
	if err := apiJSON(ctx, http.MethodPost, "/subscribe", map[string]string{"email": email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func FetchSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := apiRequest(ctx, http.MethodGet, "/subscribe/admin", nil, "", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func SendNewsletter(ctx context.Context, subject, content string) (string, error) {
	payload := map[string]string{"subject": subject, "content": content}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := apiJSON(ctx, http.MethodPost, "/newsletter/send", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func FetchNewsletterStats(ctx context.Context) (*models.NewsletterStats, error) {
	var stats models.NewsletterStats
	if err := apiRequest(ctx, http.MethodGet, "/newsletter/stats", nil, "", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchComments lists the approved comments on a post.
func FetchComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := apiRequest(ctx, http.MethodGet, "/comments/post/"+url.PathEscape(postID), nil, "", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func CreateComment(ctx context.Context, comment models.NewComment) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := apiJSON(ctx, http.MethodPost, "/comments", comment, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// FetchAdminComments lists comments by moderation status (pending or
// approved).
func FetchAdminComments(ctx context.Context, status string) (*models.CommentList, error) {
	query := url.Values{"status": {status}}
	var list models.CommentList
	if err := apiRequest(ctx, http.MethodGet, "/comments/admin", query, "", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func ApproveComment(ctx context.Context, id string) error {
	return apiRequest(ctx, http.MethodPatch, "/comments/"+url.PathEscape(id)+"/approve", nil, "", nil, nil)
}

func DeleteComment(ctx context.Context, id string) error {
	return apiRequest(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, "", nil, nil)
}

func ReplyToComment(ctx context.Context, id, content string) error {
	return apiJSON(ctx, http.MethodPost, "/comments/"+url.PathEscape(id)+"/reply", map[string]string{"content": content}, nil)
}

// ResolveImageURL maps a backend image reference to something a browser can
// load: absolute URLs pass through, root-relative paths resolve against the
// backend origin, and empty refs fall back to a placeholder.
func ResolveImageURL(ref string) string {
	if ref == "" {
		return "/static/placeholder.svg"
	}
	if len(ref) >= 4 && ref[:4] == "http" {
		return ref
	}
	return config.BackendOrigin() + ref
}
