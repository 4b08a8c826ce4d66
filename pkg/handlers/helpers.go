package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"philoblog/pkg/config"
)

const (
	flashError   = "error"
	flashSuccess = "success"
)

// baseData assembles the fields every template expects: site identity,
// login state and any pending flash messages. Reading flashes consumes
// them, so the session is saved here.
func baseData(c *gin.Context) gin.H {
	session := sessions.Default(c)
	data := gin.H{
		"Site":     config.Site,
		"LoggedIn": session.Get(sessionLoginKey) != nil,
	}

	errs := session.Flashes(flashError)
	notes := session.Flashes(flashSuccess)
	if len(errs) > 0 || len(notes) > 0 {
		_ = session.Save()
	}
	data["Errors"] = errs
	data["Notices"] = notes
	return data
}

// flash queues a message for the next rendered page.
func flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	_ = session.Save()
}

// backTo redirects to the referring page, or to fallback when the request
// carries no referer.
func backTo(c *gin.Context, fallback string) {
	target := c.Request.Referer()
	if target == "" {
		target = fallback
	}
	c.Redirect(http.StatusFound, target)
}

// renderError shows the shared error page with an inline message; the page
// the reader came from keeps its state.
func renderError(c *gin.Context, status int, message string) {
	data := baseData(c)
	data["Message"] = message
	c.HTML(status, "error.html", data)
}
