package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// ctxSession returns the session injected by the Sessions middleware. A
// missing session, or one carrying an unknown role, fails fast with
// domain.ErrUnauthenticated before any service call.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get("session").(*domain.Session)
	if sess == nil || !sess.Role.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}
