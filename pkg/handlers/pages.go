package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"philoblog/pkg/logging"
	"philoblog/pkg/models"
	"philoblog/pkg/services"

	"go.uber.org/zap"
)

const articlesPerPage = 6

// Home renders the landing page: a few featured posts plus the newsletter
// signup. A backend failure degrades to an inline message, not an error
// page.
func Home(c *gin.Context) {
	data := baseData(c)

	list, err := services.FetchFeaturedPosts(c.Request.Context(), 5)
	if err != nil {
		logging.L().Warn("featured posts unavailable", zap.Error(err))
		data["LoadError"] = err.Error()
	} else {
		data["Posts"] = list.Posts
	}

	c.HTML(http.StatusOK, "home.html", data)
}

// Articles renders the searchable, filterable, paginated post index.
func Articles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	query := services.PostQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    articlesPerPage,
	}

	data := baseData(c)
	data["Search"] = query.Search
	data["Category"] = query.Category

	list, err := services.FetchPosts(c.Request.Context(), query)
	if err != nil {
		logging.L().Warn("post listing failed", zap.Error(err))
		data["LoadError"] = err.Error()
		c.HTML(http.StatusOK, "articles.html", data)
		return
	}

	data["Posts"] = list.Posts
	data["Page"] = list.CurrentPage
	data["TotalPages"] = list.TotalPages
	data["Total"] = list.Total
	data["HasPrev"] = list.CurrentPage > 1
	data["HasNext"] = list.CurrentPage < list.TotalPages
	data["PrevPage"] = list.CurrentPage - 1
	data["NextPage"] = list.CurrentPage + 1
	c.HTML(http.StatusOK, "articles.html", data)
}

// Article renders a single post: the parsed document with its deep dives,
// related posts, the interactive widgets and the comment section.
func Article(c *gin.Context) {
	renderArticlePage(c, nil)
}

// renderArticlePage builds and renders the article view. extra overlays the
// page data; the comment handler uses it to re-show a rejected comment form
// with the typed values intact.
func renderArticlePage(c *gin.Context, extra gin.H) {
	id := c.Param("id")
	ctx := c.Request.Context()

	post, err := services.FetchPost(ctx, id)
	if err != nil {
		renderError(c, http.StatusNotFound, err.Error())
		return
	}

	doc := services.Render(post.Content)
	services.ApplyExpanded(doc, expandedDives(c, post.Key()))

	data := baseData(c)
	data["Post"] = post
	data["Doc"] = doc
	data["ImageURL"] = services.ResolveImageURL(post.FeaturedImage)

	if related, err := services.FetchPosts(ctx, services.PostQuery{Category: post.Category, Limit: 3}); err == nil {
		data["Related"] = relatedPosts(related.Posts, post.Key())
	}

	comments, err := services.FetchComments(ctx, post.Key())
	if err != nil {
		logging.L().Warn("comments unavailable", zap.String("post", post.Key()), zap.Error(err))
	}
	data["Comments"] = comments

	if len(services.Experiments) > 0 {
		exp := &services.Experiments[0]
		state := experimentFromSession(c, exp.ID)
		data["Experiment"] = exp
		data["ExperimentState"] = state
		data["Analysis"] = state.Analysis(exp)
	}

	quiz := quizFromSession(c)
	data["Quiz"] = quiz
	data["QuizQuestion"] = quiz.Current()

	data["CommentDraft"] = models.NewComment{}
	for k, v := range extra {
		data[k] = v
	}

	c.HTML(http.StatusOK, "article.html", data)
}

// relatedPosts drops the current post and keeps at most two others.
func relatedPosts(posts []models.Article, currentID string) []models.Article {
	var related []models.Article
	for _, p := range posts {
		if p.Key() == currentID {
			continue
		}
		related = append(related, p)
		if len(related) == 2 {
			break
		}
	}
	return related
}

// About renders the static about page.
func About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", baseData(c))
}
