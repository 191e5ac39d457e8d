package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// AuthService implements login, session resolution and logout on top of a
// credential store and a session store.
type AuthService struct {
	credentials ports.CredentialStore
	sessions    ports.SessionStore
	sessionTTL  time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

func NewAuthService(credentials ports.CredentialStore, sessions ports.SessionStore, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		credentials: credentials,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		log:         log,
		now:         time.Now,
	}
}

// Login checks identifier and secret against the credential store and, on an
// exact match, opens a new session carrying the account's role.
func (s *AuthService) Login(ctx context.Context, identifier, secret string) (*domain.Session, error) {
	if identifier == "" || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, ok := s.credentials.Lookup(identifier)
	if !ok || subtle.ConstantTimeCompare([]byte(account.Secret), []byte(secret)) != 1 {
		s.log.Info().Str("usuario", identifier).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:      uuid.NewString(),
		Identifier: account.Identifier,
		Role:       account.Role,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("login: save session: %w: %w", domain.ErrStoreFailure, err)
	}

	s.log.Info().Str("usuario", session.Identifier).Str("tipo", string(session.Role)).Msg("session opened")
	return session, nil
}

// CurrentSession resolves token to its live session.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		if delErr := s.sessions.Delete(ctx, token); delErr != nil {
			s.log.Warn().Err(delErr).Msg("failed to drop expired session")
		}
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Logout destroys the session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
