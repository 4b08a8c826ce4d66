package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"philoblog/pkg/config"
	"philoblog/pkg/models"
)

// withBackend points the API client at a test server for the duration of
// the test.
func withBackend(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	prev := config.APIBaseURL
	config.APIBaseURL = srv.URL + "/api"
	t.Cleanup(func() {
		config.APIBaseURL = prev
		srv.Close()
	})
	return srv
}

func TestFetchPostsBuildsQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"posts":[{"_id":"p1","title":"On Stillness"}],"totalPages":3,"currentPage":2,"total":14}`))
	}))

	list, err := FetchPosts(context.Background(), PostQuery{
		Category: "Ethics",
		Search:   "stillness",
		Page:     2,
		Limit:    6,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/posts", gotPath)
	assert.Equal(t, []string{"Ethics"}, gotQuery["category"])
	assert.Equal(t, []string{"stillness"}, gotQuery["search"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"6"}, gotQuery["limit"])

	require.Len(t, list.Posts, 1)
	assert.Equal(t, "On Stillness", list.Posts[0].Title)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, 14, list.Total)
}

func TestFetchPostsOmitsAllCategory(t *testing.T) {
	var gotQuery map[string][]string
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"posts":[]}`))
	}))

	_, err := FetchPosts(context.Background(), PostQuery{Category: "All"})
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "category")
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Post not found"}`))
	}))

	_, err := FetchPost(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Post not found", apiErr.Message)
}

func TestAPIErrorFallsBackToStatus(t *testing.T) {
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>bad gateway page</html>"))
	}))

	_, err := FetchPost(context.Background(), "p1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "server error (status 500)", apiErr.Message)
}

func TestTransportFailureIsErrNetwork(t *testing.T) {
	srv := withBackend(t, http.NotFoundHandler())
	srv.Close()

	_, err := FetchPosts(context.Background(), PostQuery{})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCreatePostSendsMultipartForm(t *testing.T) {
	var gotFields map[string]string
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for name := range r.MultipartForm.Value {
			gotFields[name] = r.FormValue(name)
		}
		w.Write([]byte(`{"_id":"p9","title":"The Examined Life"}`))
	}))

	post, err := CreatePost(context.Background(), PostForm{
		Title:       "The Examined Life",
		Excerpt:     "Why reflect at all?",
		Content:     "Body text.",
		Category:    "Ethics",
		Author:      "Doterra",
		Tags:        "socrates, virtue",
		ReadTime:    7,
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", post.Key())

	assert.Equal(t, map[string]string{
		"title":       "The Examined Life",
		"excerpt":     "Why reflect at all?",
		"content":     "Body text.",
		"category":    "Ethics",
		"author":      "Doterra",
		"tags":        "socrates, virtue",
		"readTime":    "7",
		"isPublished": "true",
	}, gotFields)
}

func TestSubscribeReturnsConfirmation(t *testing.T) {
	var gotBody string
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/subscribe", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"message":"Check your inbox to confirm."}`))
	}))

	msg, err := Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Check your inbox to confirm.", msg)
	assert.JSONEq(t, `{"email":"reader@example.com"}`, gotBody)
}

func TestFetchAdminCommentsFiltersByStatus(t *testing.T) {
	var gotStatus string
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		w.Write([]byte(`{"comments":[{"_id":"c1","content":"Lovely essay.","status":"pending"}]}`))
	}))

	list, err := FetchAdminComments(context.Background(), models.CommentPending)
	require.NoError(t, err)
	assert.Equal(t, "pending", gotStatus)
	require.Len(t, list.Comments, 1)
	assert.Equal(t, models.CommentPending, list.Comments[0].Status)
}

func TestApproveCommentUsesPatch(t *testing.T) {
	var gotMethod, gotPath string
	withBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, ApproveComment(context.Background(), "c1"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/comments/c1/approve", gotPath)
}

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty falls back to placeholder", "", "/static/placeholder.svg"},
		{"absolute passes through", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"relative resolves against backend", "/uploads/a.jpg", config.BackendOrigin() + "/uploads/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImageURL(tt.ref))
		})
	}
}
