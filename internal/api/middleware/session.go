package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

const (
	defaultCookieName = "decisiones.sid"
	cookieIssuer      = "decision-service"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secret string
	Secure bool
}

// SessionCookie carries the opaque session token in a cookie. The value is an
// HS256 JWT whose jti is the token, so a tampered cookie is rejected before
// the session store is consulted.
type SessionCookie struct {
	name   string
	secret []byte
	secure bool
}

func NewSessionCookie(cfg CookieConfig) *SessionCookie {
	name := cfg.Name
	if name == "" {
		name = defaultCookieName
	}
	return &SessionCookie{name: name, secret: []byte(cfg.Secret), secure: cfg.Secure}
}

// Write sets the cookie for sess.
func (sc *SessionCookie) Write(c echo.Context, sess *domain.Session) error {
	claims := jwt.RegisteredClaims{
		ID:       sess.Token,
		Issuer:   cookieIssuer,
		Subject:  sess.Identifier,
		IssuedAt: jwt.NewNumericDate(sess.CreatedAt),
	}
	if !sess.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(sess.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sc.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sc.name,
		Value:    signed,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Token returns the session token from a validly signed cookie.
func (sc *SessionCookie) Token(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(sc.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return sc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(cookieIssuer))
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}

// Clear expires the cookie on the client.
func (sc *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Sessions resolves the cookie to a session and injects it into the context
// under "session", along with "username" and "role". Requests without a live
// session pass through anonymously.
func Sessions(auth ports.AuthService, cookies *SessionCookie, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := cookies.Token(c)
			if !ok {
				return next(c)
			}

			sess, err := auth.CurrentSession(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set("session", sess)
				c.Set("username", sess.Identifier)
				c.Set("role", string(sess.Role))
			case errors.Is(err, domain.ErrSessionNotFound):
			default:
				log.Warn().Err(err).Str("path", c.Path()).Msg("session lookup failed, continuing anonymously")
			}
			return next(c)
		}
	}
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("session").(*domain.Session); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "No autenticado")
			}
			return next(c)
		}
	}
}

// RedirectAnonymous sends requests without a session to target.
func RedirectAnonymous(target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("session").(*domain.Session); !ok {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}

// RedirectAuthenticated sends requests that already carry a session to target.
func RedirectAuthenticated(target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("session").(*domain.Session); ok {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
