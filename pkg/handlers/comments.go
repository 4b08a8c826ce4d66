package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"philoblog/pkg/models"
	"philoblog/pkg/services"
)

// CreateComment submits a reader comment. New comments always enter the
// moderation queue; the reader is told so rather than seeing their comment
// appear immediately.
func CreateComment(c *gin.Context) {
	id := c.Param("id")

	comment := models.NewComment{
		PostID:  id,
		Author:  strings.TrimSpace(c.PostForm("author")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Content: strings.TrimSpace(c.PostForm("content")),
	}

	if comment.Author == "" || comment.Content == "" || !strings.Contains(comment.Email, "@") {
		renderArticlePage(c, gin.H{
			"CommentDraft": comment,
			"CommentError": "Name, a valid email and your thoughts are all required.",
		})
		return
	}

	if _, err := services.CreateComment(c.Request.Context(), comment); err != nil {
		renderArticlePage(c, gin.H{
			"CommentDraft": comment,
			"CommentError": err.Error(),
		})
		return
	}

	flash(c, flashSuccess, "Thank you! Your comment is awaiting moderation.")
	c.Redirect(http.StatusFound, "/article/"+id+"#comments")
}
