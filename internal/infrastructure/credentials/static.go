// Package credentials provides the fixed account table used for login.
package credentials

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// DefaultAccounts are used when no accounts file is configured.
var DefaultAccounts = []domain.Account{
	{Identifier: "Robert_Fripp", Secret: "Kingoftheking", Role: domain.RoleAdmin},
	{Identifier: "Robert_Wyatt", Secret: "RockBottom", Role: domain.RoleNormal},
}

// StaticStore is an immutable identifier → account lookup table.
type StaticStore struct {
	accounts map[string]domain.Account
	order    []string
}

// NewStaticStore validates accounts and builds the lookup table. Identifiers
// must be unique and roles known.
func NewStaticStore(accounts []domain.Account) (*StaticStore, error) {
	s := &StaticStore{accounts: make(map[string]domain.Account, len(accounts))}
	for i, a := range accounts {
		if a.Identifier == "" || a.Secret == "" {
			return nil, fmt.Errorf("credentials: account %d: identifier and secret are required", i)
		}
		if !a.Role.Valid() {
			return nil, fmt.Errorf("credentials: account %q: unknown role %q", a.Identifier, a.Role)
		}
		if _, dup := s.accounts[a.Identifier]; dup {
			return nil, fmt.Errorf("credentials: duplicate account %q", a.Identifier)
		}
		s.accounts[a.Identifier] = a
		s.order = append(s.order, a.Identifier)
	}
	return s, nil
}

// Lookup returns a copy of the account so callers cannot mutate the table.
func (s *StaticStore) Lookup(identifier string) (*domain.Account, bool) {
	a, ok := s.accounts[identifier]
	if !ok {
		return nil, false
	}
	return &a, true
}

// Accounts lists the configured accounts in declaration order.
func (s *StaticStore) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id])
	}
	return out
}

type accountsFile struct {
	Accounts []domain.Account `yaml:"accounts"`
}

// LoadFile reads accounts from a YAML file of the form:
//
//	accounts:
//	  - usuario: Robert_Fripp
//	    password: Kingoftheking
//	    tipo: admin
func LoadFile(path string) (*StaticStore, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("credentials: read %s: %w", path, err)
	}

	var f accountsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("credentials: parse %s: %w", path, err)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("credentials: %s defines no accounts", path)
	}
	return NewStaticStore(f.Accounts)
}

// Load returns the accounts from path, or DefaultAccounts when path is empty.
func Load(path string) (*StaticStore, error) {
	if path == "" {
		return NewStaticStore(DefaultAccounts)
	}
	return LoadFile(path)
}
