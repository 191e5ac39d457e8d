package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler renders the server-side HTML views.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index greets the logged-in account.
func (h *PageHandler) Index(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Render(http.StatusOK, "index.html", map[string]any{"Usuario": sess.Identifier})
}

// Login shows the login form.
func (h *PageHandler) Login(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]any{"Error": false})
}
