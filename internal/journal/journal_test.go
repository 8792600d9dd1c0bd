package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:")
	require.NoError(t, err)
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := setupTestJournal(t)

	_, err := j.Record("git", "stash trick", "git stash --include-untracked", "/home/user")
	require.NoError(t, err)
	_, err = j.Record("docker", "prune", "docker system prune -f", "/home/user")
	require.NoError(t, err)

	t.Run("all groups, oldest first", func(t *testing.T) {
		records, err := j.Recent("", 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "git", records[0].GroupName)
		assert.Equal(t, "docker", records[1].GroupName)
	})

	t.Run("filtered by group", func(t *testing.T) {
		records, err := j.Recent("git", 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "git stash --include-untracked", records[0].Command)
	})

	t.Run("respects limit", func(t *testing.T) {
		records, err := j.Recent("", 1)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "docker", records[0].GroupName)
	})
}

func TestRecentEmptyJournal(t *testing.T) {
	j := setupTestJournal(t)

	records, err := j.Recent("", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
