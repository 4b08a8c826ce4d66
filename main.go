package main

import (
	"html/template"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"philoblog/pkg/config"
	"philoblog/pkg/handlers"
	"philoblog/pkg/logging"
	"philoblog/pkg/services"
)

func main() {
	// Initialize config
	config.Init()

	if err := logging.Init(os.Getenv("DEBUG") != ""); err != nil {
		panic(err)
	}
	defer logging.Sync()

	// Static widget data must be consistent before serving anything.
	if err := services.LoadWidgetData(config.DataDir); err != nil {
		logging.L().Fatal("widget data invalid", zap.Error(err))
	}

	r := gin.New()
	r.Use(logging.RequestLogger(), gin.Recovery())

	// Session Setup
	store := cookie.NewStore([]byte(config.SessionSecret()))
	r.Use(sessions.Sessions("philoblog", store))

	// Static Files & Templates
	r.SetFuncMap(template.FuncMap{
		"imageURL": services.ResolveImageURL,
		"add":      func(a, b int) int { return a + b },
	})
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	// --- Public Site ---
	r.GET("/", handlers.Home)
	r.GET("/articles", handlers.Articles)
	r.GET("/article/:id", handlers.Article)
	r.GET("/about", handlers.About)
	r.POST("/subscribe", handlers.SubscribeNewsletter)
	r.POST("/article/:id/comments", handlers.CreateComment)

	// --- Widget State ---
	r.POST("/article/:id/dives/toggle", handlers.ToggleDive)
	r.POST("/article/:id/experiment", handlers.AnswerExperiment)
	r.POST("/article/:id/experiment/reset", handlers.ResetExperiment)
	r.POST("/article/:id/quiz/answer", handlers.AnswerQuiz)
	r.POST("/article/:id/quiz/reset", handlers.ResetQuiz)

	// --- Auth Routes ---
	r.GET("/login", handlers.LoginPage)
	r.GET("/login/github", handlers.GithubLogin)
	r.GET("/auth/callback", handlers.AuthCallback)
	r.GET("/logout", handlers.Logout)

	// --- Admin Back Office (Authorized) ---
	admin := r.Group("/admin")
	admin.Use(handlers.AuthRequired)
	{
		admin.GET("", handlers.Dashboard)
		admin.GET("/posts/new", handlers.NewPostForm)
		admin.POST("/posts", handlers.CreatePost)
		admin.GET("/posts/:id/edit", handlers.EditPostForm)
		admin.POST("/posts/:id", handlers.UpdatePost)
		admin.POST("/posts/:id/delete", handlers.DeletePost)
		admin.GET("/comments", handlers.ModerateComments)
		admin.POST("/comments/:id/approve", handlers.ApproveComment)
		admin.POST("/comments/:id/delete", handlers.DeleteComment)
		admin.POST("/comments/:id/reply", handlers.ReplyToComment)
		admin.GET("/subscribers", handlers.Subscribers)
		admin.GET("/newsletter", handlers.NewsletterForm)
		admin.POST("/newsletter", handlers.SendNewsletter)
	}

	if err := r.Run(config.ListenAddr); err != nil {
		logging.L().Fatal("server exited", zap.Error(err))
	}
}
