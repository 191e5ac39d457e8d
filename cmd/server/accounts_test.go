package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsCmd_Defaults(t *testing.T) {
	t.Setenv("ACCOUNTS_FILE", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"accounts"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Robert_Fripp")
	assert.Contains(t, out.String(), "admin")
	assert.Contains(t, out.String(), "Robert_Wyatt")
	assert.NotContains(t, out.String(), "Kingoftheking")
	assert.NotContains(t, out.String(), "RockBottom")
}

func TestAccountsCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - usuario: Brian_Eno\n    password: Ambient1\n    tipo: normal\n"), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"accounts", "--file", path})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Brian_Eno")
	assert.NotContains(t, out.String(), "Ambient1")
	assert.NotContains(t, out.String(), "Robert_Fripp")
}
