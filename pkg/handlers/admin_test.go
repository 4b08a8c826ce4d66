package handlers

import (
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postEditorForm() url.Values {
	return url.Values{
		"title":    {"The Examined Life"},
		"excerpt":  {"Why reflect at all?"},
		"content":  {"A long essay body the admin would hate to retype."},
		"category": {"Ethics"},
		"author":   {"Doterra"},
		"tags":     {"socrates, virtue"},
		"readTime": {"7"},
	}
}

func TestCreatePostValidationKeepsFormValues(t *testing.T) {
	var backendCalls atomic.Int32
	pointBackendAt(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls.Add(1)
	}))

	b := newTestBrowser(t, func(r *gin.Engine) {
		r.POST("/admin/posts", CreatePost)
	})

	form := postEditorForm()
	form.Del("excerpt")
	w := b.do(http.MethodPost, "/admin/posts", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Title, excerpt, content and category are required.")
	assert.Contains(t, w.Body.String(), "The Examined Life")
	assert.Contains(t, w.Body.String(), "A long essay body the admin would hate to retype.")
	assert.Equal(t, int32(0), backendCalls.Load())
}

func TestCreatePostKeepsFormOnBackendFailure(t *testing.T) {
	pointBackendAt(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"storage unavailable"}`))
	}))

	b := newTestBrowser(t, func(r *gin.Engine) {
		r.POST("/admin/posts", CreatePost)
	})

	w := b.do(http.MethodPost, "/admin/posts", postEditorForm())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storage unavailable")
	assert.Contains(t, w.Body.String(), "The Examined Life")
	assert.Contains(t, w.Body.String(), "A long essay body the admin would hate to retype.")
}

func TestUpdatePostFailureRerendersEditor(t *testing.T) {
	pointBackendAt(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"edit conflict"}`))
	}))

	b := newTestBrowser(t, func(r *gin.Engine) {
		r.POST("/admin/posts/:id", UpdatePost)
	})

	w := b.do(http.MethodPost, "/admin/posts/p1", postEditorForm())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "edit conflict")
	assert.Contains(t, w.Body.String(), "Edit Post")
	// The form still posts back to the same record.
	assert.Contains(t, w.Body.String(), `action="/admin/posts/p1"`)
	assert.Contains(t, w.Body.String(), "A long essay body the admin would hate to retype.")
}

func TestCreatePostSuccessRedirectsToDashboard(t *testing.T) {
	pointBackendAt(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"p9","title":"The Examined Life"}`))
	}))

	b := newTestBrowser(t, func(r *gin.Engine) {
		r.POST("/admin/posts", CreatePost)
	})

	w := b.do(http.MethodPost, "/admin/posts", postEditorForm())

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}
