package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"philoblog/pkg/config"
	"philoblog/pkg/logging"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const sessionLoginKey = "github_login"

// AuthRequired gates the admin area behind a logged-in session.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(sessionLoginKey) == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", baseData(c))
}

func GithubLogin(c *gin.Context) {
	url := config.OauthConf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// AuthCallback exchanges the OAuth code, resolves the GitHub login and
// admits only the configured admin account.
func AuthCallback(c *gin.Context) {
	code := c.Query("code")
	token, err := config.OauthConf.Exchange(context.Background(), code)
	if err != nil {
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	login, err := fetchGithubLogin(c.Request.Context(), token)
	if err != nil {
		logging.L().Warn("github user lookup failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Could not verify GitHub account")
		return
	}

	if config.AdminLogin == "" || !strings.EqualFold(login, config.AdminLogin) {
		c.String(http.StatusForbidden, "This account is not the site admin")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionLoginKey, login)
	_ = session.Save()

	c.Redirect(http.StatusFound, "/admin")
}

func fetchGithubLogin(ctx context.Context, token *oauth2.Token) (string, error) {
	client := config.OauthConf.Client(ctx, token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}
	return user.Login, nil
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}
