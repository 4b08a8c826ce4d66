package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"philoblog/pkg/services"
)

// SubscribeNewsletter handles the signup form found on most pages. The
// email is validated before any backend call; failures come back as inline
// flash messages on the page the reader was on.
func SubscribeNewsletter(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" || !strings.Contains(email, "@") {
		flash(c, flashError, "Please enter a valid email address.")
		backTo(c, "/")
		return
	}

	msg, err := services.Subscribe(c.Request.Context(), email)
	if err != nil {
		flash(c, flashError, err.Error())
		backTo(c, "/")
		return
	}

	if msg == "" {
		msg = "Thank you for subscribing!"
	}
	flash(c, flashSuccess, msg)
	backTo(c, "/")
}
