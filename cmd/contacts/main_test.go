package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("migrate"))
}

func TestMigrateIsNoopForMemoryStorage(t *testing.T) {
	t.Setenv("CONTACTS_PRIMARY__ENV", "development")
	t.Setenv("CONTACTS_SERVER__PORT", "8080")
	t.Setenv("CONTACTS_SERVER__READ_TIMEOUT", "30")
	t.Setenv("CONTACTS_SERVER__WRITE_TIMEOUT", "30")
	t.Setenv("CONTACTS_SERVER__IDLE_TIMEOUT", "60")
	t.Setenv("CONTACTS_SERVER__CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("CONTACTS_STORAGE__DRIVER", "memory")
	t.Setenv("CONTACTS_OBSERVABILITY__LOGGING__LEVEL", "error")

	root := newRootCommand()
	root.SetArgs([]string{"migrate"})
	assert.NoError(t, root.Execute())
}
