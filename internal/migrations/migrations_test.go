package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbeddedInOrder(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"00001_create_users.sql",
		"00002_create_transactions.sql",
		"00003_create_transaction_parties.sql",
	}, names)

	for _, name := range names {
		body, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), name)
	}
}

func TestUsersMigrationEnforcesUniqueness(t *testing.T) {
	body, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)

	assert.Contains(t, string(body), "CREATE UNIQUE INDEX IF NOT EXISTS ix_users_username ON users (username)")
	assert.Contains(t, string(body), "CREATE UNIQUE INDEX IF NOT EXISTS ix_users_email ON users (email)")
}
