package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"create posts table", "create_posts_table"},
		{"Add-Subscriber Index", "add_subscriber_index"},
		{"outbox  cleanup!!", "outbox_cleanup"},
		{"__weird__", "weird"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeName(tc.input), "input %q", tc.input)
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "create posts table", "posts and tag associations")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_create_posts_table.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_create_posts_table.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "create posts table")
	assert.Contains(t, string(up), "posts and tag associations")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "initial schema", "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory lists as empty", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists pairs sorted by version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20240102000000_add_outbox.up.sql",
			"20240102000000_add_outbox.down.sql",
			"20240101000000_create_posts.up.sql",
			"20240101000000_create_posts.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"20240101000000_create_posts",
			"20240102000000_add_outbox",
		}, migrations)
	})
}
