package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/decision-service/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)

	a, ok := store.Lookup("Robert_Fripp")
	require.True(t, ok)
	assert.Equal(t, "Kingoftheking", a.Secret)
	assert.Equal(t, domain.RoleAdmin, a.Role)

	a, ok = store.Lookup("Robert_Wyatt")
	require.True(t, ok)
	assert.Equal(t, domain.RoleNormal, a.Role)

	_, ok = store.Lookup("robert_fripp")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	store, err := Load("")
	require.NoError(t, err)

	a, _ := store.Lookup("Robert_Wyatt")
	a.Role = domain.RoleAdmin

	b, _ := store.Lookup("Robert_Wyatt")
	assert.Equal(t, domain.RoleNormal, b.Role)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := `accounts:
  - usuario: Bill_Bruford
    password: Feels_Good
    tipo: normal
  - usuario: Adrian_Belew
    password: Discipline
    tipo: admin
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := LoadFile(path)
	require.NoError(t, err)

	accounts := store.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, "Bill_Bruford", accounts[0].Identifier)
	assert.Equal(t, domain.RoleAdmin, accounts[1].Role)
}

func TestNewStaticStore_Validation(t *testing.T) {
	cases := map[string][]domain.Account{
		"unknown role":   {{Identifier: "a", Secret: "b", Role: "root"}},
		"missing secret": {{Identifier: "a", Role: domain.RoleAdmin}},
		"duplicate": {
			{Identifier: "a", Secret: "b", Role: domain.RoleAdmin},
			{Identifier: "a", Secret: "c", Role: domain.RoleNormal},
		},
	}
	for name, accounts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewStaticStore(accounts)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("accounts: []\n"), 0o600))
	_, err = LoadFile(empty)
	assert.ErrorContains(t, err, "no accounts")
}
