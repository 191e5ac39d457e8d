package ports

import "github.com/99minutos/decision-service/internal/core/domain"

// CredentialStore is a read-only view of the configured accounts.
type CredentialStore interface {
	// Lookup returns the account registered under identifier.
	Lookup(identifier string) (*domain.Account, bool)
}
