package groups

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTimestamp() time.Time {
	return time.Date(2026, 8, 24, 14, 30, 5, 0, time.Local)
}

func TestEntryRender(t *testing.T) {
	entry := Entry{
		Title:       "t",
		Timestamp:   testTimestamp(),
		Cwd:         "/tmp",
		Commands:    []string{"echo hi"},
		Description: "d",
	}

	expected := "# t\n" +
		"\n" +
		"*Saved: 2026-08-24 14:30:05 — cwd: /tmp*\n" +
		"\n" +
		"```bash\n" +
		"echo hi\n" +
		"```\n" +
		"d\n" +
		"\n" +
		"---\n"

	assert.Equal(t, expected, entry.Render())
}

func TestEntryRenderSessionImport(t *testing.T) {
	entry := Entry{
		Title:     "deploy session",
		Timestamp: testTimestamp(),
		Cwd:       "/srv/app",
		Commands:  []string{"git pull", "make build", "systemctl restart app"},
	}

	rendered := entry.Render()

	assert.Contains(t, rendered, "```bash\ngit pull\nmake build\nsystemctl restart app\n```\n")
}

func TestEntryRoundTrip(t *testing.T) {
	t.Run("single command", func(t *testing.T) {
		entry := Entry{
			Title:       "rebuild cache",
			Timestamp:   testTimestamp(),
			Cwd:         "/home/user/project",
			Commands:    []string{"make cache"},
			Description: "only needed after schema changes",
		}

		parsed := ParseEntries(entry.Render())
		require.Len(t, parsed, 1)
		assert.Equal(t, entry, parsed[0])
	})

	t.Run("multiple commands", func(t *testing.T) {
		entry := Entry{
			Title:     "release",
			Timestamp: testTimestamp(),
			Cwd:       "/home/user/project",
			Commands:  []string{"git tag v1.2.3", "git push --tags"},
		}

		parsed := ParseEntries(entry.Render())
		require.Len(t, parsed, 1)
		assert.Equal(t, entry.Commands, parsed[0].Commands)
		assert.Empty(t, parsed[0].Description)
	})

	t.Run("multi-line description", func(t *testing.T) {
		entry := Entry{
			Title:       "notes",
			Timestamp:   testTimestamp(),
			Cwd:         "/",
			Commands:    []string{"df -h"},
			Description: "first line\nsecond line",
		}

		parsed := ParseEntries(entry.Render())
		require.Len(t, parsed, 1)
		assert.Equal(t, "first line\nsecond line", parsed[0].Description)
	})
}

func TestParseEntriesMultiple(t *testing.T) {
	first := Entry{
		Title:     "one",
		Timestamp: testTimestamp(),
		Cwd:       "/a",
		Commands:  []string{"ls"},
	}
	second := Entry{
		Title:       "two",
		Timestamp:   testTimestamp().Add(time.Minute),
		Cwd:         "/b",
		Commands:    []string{"pwd"},
		Description: "later",
	}

	parsed := ParseEntries(first.Render() + second.Render())
	require.Len(t, parsed, 2)
	assert.Equal(t, "one", parsed[0].Title)
	assert.Equal(t, "two", parsed[1].Title)
	assert.Equal(t, "later", parsed[1].Description)
}

func TestParseEntriesSkipsGarbage(t *testing.T) {
	assert.Empty(t, ParseEntries(""))
	assert.Empty(t, ParseEntries("just some text\n---\nmore text\n"))
}
