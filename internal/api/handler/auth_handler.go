package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/api/metrics"
	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

// SessionCookies reads and writes the cookie carrying the session token.
type SessionCookies interface {
	Write(c echo.Context, sess *domain.Session) error
	Token(c echo.Context) (string, bool)
	Clear(c echo.Context)
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     SessionCookies
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookies SessionCookies, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies, log: log}
}

type loginRequest struct {
	Identifier string `json:"usuario" form:"usuario" validate:"required"`
	Secret     string `json:"password" form:"password" validate:"required"`
}

// sessionResponse is empty ({}) when there is no session.
type sessionResponse struct {
	Identifier string      `json:"usuario,omitempty"`
	Role       domain.Role `json:"tipo,omitempty"`
}

type logoutResponse struct {
	Closed bool `json:"cerrado"`
}

// Login authenticates an account and starts a session carried by a cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		if isTypeMismatch(err) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidCredentials
	}

	ctx := c.Request().Context()
	sess, err := h.authService.Login(ctx, req.Identifier, req.Secret)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	// A new login replaces whatever session the cookie carried before.
	if old, ok := h.cookies.Token(c); ok && old != sess.Token {
		if err := h.authService.Logout(ctx, old); err != nil {
			h.log.Warn().Err(err).Msg("failed to drop previous session")
		}
	}

	if err := h.cookies.Write(c, sess); err != nil {
		return fmt.Errorf("write session cookie: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Identifier: sess.Identifier, Role: sess.Role})
}

// Logout destroys the current session, if any, and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := h.cookies.Token(c); ok {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("failed to destroy session")
		}
	}
	h.cookies.Clear(c)

	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, logoutResponse{Closed: true})
}

// Session reports the identifier and role of the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	return c.JSON(http.StatusOK, sessionResponse{Identifier: sess.Identifier, Role: sess.Role})
}
