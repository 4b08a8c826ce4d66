package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"philoblog/pkg/config"
	"philoblog/pkg/models"
	"philoblog/pkg/services"
)

// Dashboard lists every post, published or not, for the back office.
func Dashboard(c *gin.Context) {
	data := baseData(c)

	posts, err := services.FetchAdminPosts(c.Request.Context())
	if err != nil {
		data["LoadError"] = err.Error()
	} else {
		data["Posts"] = posts
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", data)
}

// NewPostForm shows an empty post editor.
func NewPostForm(c *gin.Context) {
	data := baseData(c)
	data["Post"] = models.Article{Author: config.Site.Author, ReadTime: 5}
	c.HTML(http.StatusOK, "admin_post_form.html", data)
}

// EditPostForm shows the editor pre-filled with an existing post.
func EditPostForm(c *gin.Context) {
	post, err := services.FetchPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, http.StatusNotFound, err.Error())
		return
	}

	data := baseData(c)
	data["Post"] = *post
	data["Editing"] = true
	c.HTML(http.StatusOK, "admin_post_form.html", data)
}

// postFormFromRequest validates the editor form before anything goes over
// the wire. It returns a user-facing message when the form is rejected.
func postFormFromRequest(c *gin.Context) (services.PostForm, string) {
	form := services.PostForm{
		Title:    strings.TrimSpace(c.PostForm("title")),
		Excerpt:  strings.TrimSpace(c.PostForm("excerpt")),
		Content:  c.PostForm("content"),
		Category: c.PostForm("category"),
		Author:   strings.TrimSpace(c.PostForm("author")),
		Tags:     strings.TrimSpace(c.PostForm("tags")),
	}
	form.IsPublished = c.PostForm("isPublished") == "on"
	if rt, err := strconv.Atoi(c.PostForm("readTime")); err == nil && rt > 0 {
		form.ReadTime = rt
	} else {
		form.ReadTime = 5
	}

	if form.Title == "" || form.Excerpt == "" || form.Content == "" || form.Category == "" {
		return form, "Title, excerpt, content and category are required."
	}

	if file, err := c.FormFile("featuredImage"); err == nil && file != nil {
		if file.Size > config.MaxUploadBytes {
			return form, fmt.Sprintf("Image is too large (limit %d MB).", config.MaxUploadBytes>>20)
		}
		form.Image = file
	}

	return form, ""
}

// rerenderPostForm shows the editor again with the submitted values and an
// inline error, so a rejected save never loses what the admin typed. The
// file input cannot be refilled; everything else survives.
func rerenderPostForm(c *gin.Context, form services.PostForm, id, problem string) {
	var tags []string
	for _, tag := range strings.Split(form.Tags, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	data := baseData(c)
	data["Post"] = models.Article{
		ID:          id,
		Title:       form.Title,
		Excerpt:     form.Excerpt,
		Content:     form.Content,
		Category:    form.Category,
		Author:      form.Author,
		Tags:        tags,
		ReadTime:    form.ReadTime,
		IsPublished: form.IsPublished,
	}
	data["Editing"] = id != ""
	data["FormError"] = problem
	c.HTML(http.StatusOK, "admin_post_form.html", data)
}

// CreatePost creates a post from the editor form, forwarding the optional
// featured image as multipart form data.
func CreatePost(c *gin.Context) {
	form, problem := postFormFromRequest(c)
	if problem != "" {
		rerenderPostForm(c, form, "", problem)
		return
	}

	if _, err := services.CreatePost(c.Request.Context(), form); err != nil {
		rerenderPostForm(c, form, "", err.Error())
		return
	}

	flash(c, flashSuccess, "Post created.")
	c.Redirect(http.StatusFound, "/admin")
}

// UpdatePost saves edits to an existing post.
func UpdatePost(c *gin.Context) {
	id := c.Param("id")

	form, problem := postFormFromRequest(c)
	if problem != "" {
		rerenderPostForm(c, form, id, problem)
		return
	}

	if _, err := services.UpdatePost(c.Request.Context(), id, form); err != nil {
		rerenderPostForm(c, form, id, err.Error())
		return
	}

	flash(c, flashSuccess, "Post updated.")
	c.Redirect(http.StatusFound, "/admin")
}

// DeletePost removes a post.
func DeletePost(c *gin.Context) {
	if err := services.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		flash(c, flashError, err.Error())
	} else {
		flash(c, flashSuccess, "Post deleted.")
	}
	c.Redirect(http.StatusFound, "/admin")
}

// ModerateComments lists comments by moderation status, pending by default.
func ModerateComments(c *gin.Context) {
	status := c.DefaultQuery("status", models.CommentPending)
	if status != models.CommentPending && status != models.CommentApproved {
		status = models.CommentPending
	}

	data := baseData(c)
	data["Status"] = status

	list, err := services.FetchAdminComments(c.Request.Context(), status)
	if err != nil {
		data["LoadError"] = err.Error()
	} else {
		data["Comments"] = list.Comments
		data["Total"] = list.Total
	}

	c.HTML(http.StatusOK, "admin_comments.html", data)
}

// ApproveComment makes a pending comment publicly visible.
func ApproveComment(c *gin.Context) {
	if err := services.ApproveComment(c.Request.Context(), c.Param("id")); err != nil {
		flash(c, flashError, err.Error())
	} else {
		flash(c, flashSuccess, "Comment approved.")
	}
	backTo(c, "/admin/comments")
}

// DeleteComment removes a comment in either moderation state.
func DeleteComment(c *gin.Context) {
	if err := services.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		flash(c, flashError, err.Error())
	} else {
		flash(c, flashSuccess, "Comment deleted.")
	}
	backTo(c, "/admin/comments")
}

// ReplyToComment attaches an admin reply to a comment.
func ReplyToComment(c *gin.Context) {
	content := strings.TrimSpace(c.PostForm("content"))
	if content == "" {
		flash(c, flashError, "A reply needs some content.")
		backTo(c, "/admin/comments")
		return
	}

	if err := services.ReplyToComment(c.Request.Context(), c.Param("id"), content); err != nil {
		flash(c, flashError, err.Error())
	} else {
		flash(c, flashSuccess, "Reply added.")
	}
	backTo(c, "/admin/comments")
}

// Subscribers lists the newsletter audience.
func Subscribers(c *gin.Context) {
	data := baseData(c)

	subs, err := services.FetchSubscribers(c.Request.Context())
	if err != nil {
		data["LoadError"] = err.Error()
	} else {
		data["Subscribers"] = subs
	}

	c.HTML(http.StatusOK, "admin_subscribers.html", data)
}

// NewsletterForm shows the broadcast composer alongside audience stats.
func NewsletterForm(c *gin.Context) {
	data := baseData(c)

	if stats, err := services.FetchNewsletterStats(c.Request.Context()); err == nil {
		data["Stats"] = stats
	}

	c.HTML(http.StatusOK, "admin_newsletter.html", data)
}

// SendNewsletter broadcasts to all active subscribers.
func SendNewsletter(c *gin.Context) {
	subject := strings.TrimSpace(c.PostForm("subject"))
	content := strings.TrimSpace(c.PostForm("content"))
	if subject == "" || content == "" {
		flash(c, flashError, "Subject and content are both required.")
		c.Redirect(http.StatusFound, "/admin/newsletter")
		return
	}

	msg, err := services.SendNewsletter(c.Request.Context(), subject, content)
	if err != nil {
		flash(c, flashError, err.Error())
		c.Redirect(http.StatusFound, "/admin/newsletter")
		return
	}

	if msg == "" {
		msg = "Newsletter sent."
	}
	flash(c, flashSuccess, msg)
	c.Redirect(http.StatusFound, "/admin/newsletter")
}
