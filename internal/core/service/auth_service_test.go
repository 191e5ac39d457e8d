package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/core/domain"
)

type stubCredentials map[string]*domain.Account

func (s stubCredentials) Lookup(identifier string) (*domain.Account, bool) {
	a, ok := s[identifier]
	return a, ok
}

func defaultCredentials() stubCredentials {
	return stubCredentials{
		"Robert_Fripp": {Identifier: "Robert_Fripp", Secret: "Kingoftheking", Role: domain.RoleAdmin},
		"Robert_Wyatt": {Identifier: "Robert_Wyatt", Secret: "RockBottom", Role: domain.RoleNormal},
	}
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
	saveErr  error
	deleted  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *sess
	s.sessions[sess.Token] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	delete(s.sessions, token)
	return nil
}

func newAuthSvc(store *stubSessionStore) *AuthService {
	return NewAuthService(defaultCredentials(), store, time.Hour, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubSessionStore()
	svc := newAuthSvc(store)

	sess, err := svc.Login(context.Background(), "Robert_Fripp", "Kingoftheking")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %s", sess.Role)
	}
	if sess.Identifier != "Robert_Fripp" {
		t.Fatalf("unexpected identifier: %s", sess.Identifier)
	}
	if sess.Token == "" {
		t.Fatalf("expected token")
	}
	if _, ok := store.sessions[sess.Token]; !ok {
		t.Fatalf("session not persisted")
	}
}

func TestAuthService_Login_NormalRole(t *testing.T) {
	svc := newAuthSvc(newStubSessionStore())

	sess, err := svc.Login(context.Background(), "Robert_Wyatt", "RockBottom")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.Role != domain.RoleNormal {
		t.Fatalf("expected role normal, got %s", sess.Role)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	cases := []struct {
		name, identifier, secret string
	}{
		{"wrong secret", "Robert_Fripp", "RockBottom"},
		{"unknown account", "Brian_Eno", "Kingoftheking"},
		{"empty secret", "Robert_Fripp", ""},
		{"empty identifier", "", "Kingoftheking"},
		{"case differs", "robert_fripp", "Kingoftheking"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubSessionStore()
			svc := newAuthSvc(store)

			sess, err := svc.Login(context.Background(), tc.identifier, tc.secret)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if sess != nil {
				t.Fatalf("expected no session")
			}
			if len(store.sessions) != 0 {
				t.Fatalf("expected no session stored, got %d", len(store.sessions))
			}
		})
	}
}

func TestAuthService_Login_DistinctTokens(t *testing.T) {
	svc := newAuthSvc(newStubSessionStore())

	a, _ := svc.Login(context.Background(), "Robert_Fripp", "Kingoftheking")
	b, _ := svc.Login(context.Background(), "Robert_Fripp", "Kingoftheking")
	if a.Token == b.Token {
		t.Fatalf("expected distinct tokens")
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	store := newStubSessionStore()
	store.saveErr = errors.New("redis down")
	svc := newAuthSvc(store)

	_, err := svc.Login(context.Background(), "Robert_Fripp", "Kingoftheking")
	if !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
}

func TestAuthService_CurrentSession(t *testing.T) {
	store := newStubSessionStore()
	svc := newAuthSvc(store)

	sess, _ := svc.Login(context.Background(), "Robert_Wyatt", "RockBottom")

	got, err := svc.CurrentSession(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if got.Identifier != "Robert_Wyatt" || got.Role != domain.RoleNormal {
		t.Fatalf("unexpected session: %+v", got)
	}

	if _, err := svc.CurrentSession(context.Background(), "never-issued"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.CurrentSession(context.Background(), ""); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for empty token, got %v", err)
	}
}

func TestAuthService_CurrentSession_Expired(t *testing.T) {
	store := newStubSessionStore()
	svc := newAuthSvc(store)

	sess, _ := svc.Login(context.Background(), "Robert_Fripp", "Kingoftheking")
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := svc.CurrentSession(context.Background(), sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, ok := store.sessions[sess.Token]; ok {
		t.Fatalf("expected expired session to be dropped")
	}
}

func TestAuthService_Logout(t *testing.T) {
	store := newStubSessionStore()
	svc := newAuthSvc(store)

	sess, _ := svc.Login(context.Background(), "Robert_Fripp", "Kingoftheking")

	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.CurrentSession(context.Background(), sess.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone after logout, got %v", err)
	}

	// second logout is a no-op
	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("empty-token logout: %v", err)
	}
}
