package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/core/domain"
)

type stubAuthService struct {
	currentFn func(ctx context.Context, token string) (*domain.Session, error)
}

func (s *stubAuthService) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	return s.currentFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func testSession() *domain.Session {
	now := time.Now()
	return &domain.Session{
		Token:      "tok-1",
		Identifier: "Robert_Fripp",
		Role:       domain.RoleAdmin,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	}
}

// issueCookie writes a cookie through sc and returns it as the client would send it back.
func issueCookie(t *testing.T, sc *SessionCookie, sess *domain.Session) *http.Cookie {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)
	if err := sc.Write(c, sess); err != nil {
		t.Fatalf("write cookie: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSessionCookie_RoundTrip(t *testing.T) {
	sc := NewSessionCookie(CookieConfig{Secret: "s3cret"})
	cookie := issueCookie(t, sc, testSession())

	if cookie.Name != defaultCookieName || !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	token, ok := sc.Token(c)
	if !ok || token != "tok-1" {
		t.Fatalf("expected tok-1, got %q (ok=%v)", token, ok)
	}
}

func TestSessionCookie_RejectsForeignSignature(t *testing.T) {
	other := NewSessionCookie(CookieConfig{Secret: "other"})
	cookie := issueCookie(t, other, testSession())

	sc := NewSessionCookie(CookieConfig{Secret: "s3cret"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if _, ok := sc.Token(c); ok {
		t.Fatalf("expected cookie signed with another secret to be rejected")
	}
}

func TestSessionCookie_Clear(t *testing.T) {
	sc := NewSessionCookie(CookieConfig{Name: "sid", Secret: "s3cret"})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

	sc.Clear(c)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired sid cookie, got %+v", cookies)
	}
}

func TestSessions_InjectsSession(t *testing.T) {
	sc := NewSessionCookie(CookieConfig{Secret: "s3cret"})
	sess := testSession()
	auth := &stubAuthService{currentFn: func(ctx context.Context, token string) (*domain.Session, error) {
		if token != sess.Token {
			t.Fatalf("unexpected token %q", token)
		}
		return sess, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/decisiones", nil)
	req.AddCookie(issueCookie(t, sc, sess))
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var gotRole, gotUser string
	h := Sessions(auth, sc, zerolog.Nop())(func(c echo.Context) error {
		gotRole, _ = c.Get("role").(string)
		gotUser, _ = c.Get("username").(string)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotRole != "admin" || gotUser != "Robert_Fripp" {
		t.Fatalf("unexpected context values: role=%q user=%q", gotRole, gotUser)
	}
}

func TestSessions_StaleTokenIsAnonymous(t *testing.T) {
	sc := NewSessionCookie(CookieConfig{Secret: "s3cret"})
	auth := &stubAuthService{currentFn: func(ctx context.Context, token string) (*domain.Session, error) {
		return nil, domain.ErrSessionNotFound
	}}

	req := httptest.NewRequest(http.MethodGet, "/decisiones", nil)
	req.AddCookie(issueCookie(t, sc, testSession()))
	c := echo.New().NewContext(req, httptest.NewRecorder())

	h := Sessions(auth, sc, zerolog.Nop())(RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	}))

	err := h(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSessions_NoCookieSkipsLookup(t *testing.T) {
	sc := NewSessionCookie(CookieConfig{Secret: "s3cret"})
	auth := &stubAuthService{currentFn: func(ctx context.Context, token string) (*domain.Session, error) {
		t.Fatalf("store must not be consulted without a cookie")
		return nil, nil
	}}

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/session", nil), httptest.NewRecorder())
	called := false
	h := Sessions(auth, sc, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil || !called {
		t.Fatalf("expected anonymous pass-through, err=%v called=%v", err, called)
	}
}

func TestRedirectAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	h := RedirectAnonymous("/login")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRedirectAuthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)
	c.Set("session", testSession())

	h := RedirectAuthenticated("/")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d", rec.Code)
	}
}
