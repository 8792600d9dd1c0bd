package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i7mada249/tnm/internal/groups"
)

func newTestStore(t *testing.T) *groups.Store {
	t.Helper()
	dir := t.TempDir()
	return groups.NewStore(filepath.Join(dir, "groups.yaml"), filepath.Join(dir, "notes"), nil)
}

func TestDescribeGroupError(t *testing.T) {
	t.Run("suggests close names", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.CreateOrUpdate("git", "")
		require.NoError(t, err)

		_, getErr := store.Get("gi")
		described := describeGroupError(store, getErr, "gi")
		assert.Contains(t, described.Error(), "git")
	})

	t.Run("hints at group creation when store is empty", func(t *testing.T) {
		store := newTestStore(t)

		_, getErr := store.Get("missing")
		described := describeGroupError(store, getErr, "missing")
		assert.Contains(t, described.Error(), "tnm -n missing")
	})

	t.Run("passes unrelated errors through", func(t *testing.T) {
		store := newTestStore(t)
		boom := errors.New("boom")

		assert.Equal(t, boom, describeGroupError(store, boom, "any"))
	})
}

func TestHelpTextMentionsCoreOperations(t *testing.T) {
	for _, fragment := range []string{"-n NAME", "-g NAME", "-l", "-r NAME", "-d NAME", "HISTFILE", "TNM_LIVE_HISTORY"} {
		assert.Contains(t, helpText, fragment)
	}
}
