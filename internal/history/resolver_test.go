package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scripted Source for exercising the fallback chain.
type fakeSource struct {
	name  string
	lines []string
	err   error
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Probe(count int) ([]string, error) {
	return s.lines, s.err
}

func TestResolveTakesLastCountSurvivors(t *testing.T) {
	source := &fakeSource{
		name:  "fake",
		lines: []string{"ls", "cd /tmp", "x", "tnm -g foo"},
	}
	resolver := NewResolverWithSources([]Source{source}, NewFilter("tnm"), nil)

	t.Run("count two returns both survivors chronologically", func(t *testing.T) {
		commands, err := resolver.Resolve(2)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "cd /tmp"}, commands)
	})

	t.Run("count one returns the most recent survivor", func(t *testing.T) {
		commands, err := resolver.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"cd /tmp"}, commands)
	})

	t.Run("count larger than survivors returns them all", func(t *testing.T) {
		commands, err := resolver.Resolve(10)
		require.NoError(t, err)
		assert.Equal(t, []string{"ls", "cd /tmp"}, commands)
	})
}

func TestResolveFallbackChain(t *testing.T) {
	t.Run("skips failing sources", func(t *testing.T) {
		resolver := NewResolverWithSources([]Source{
			&fakeSource{name: "broken", err: errors.New("boom")},
			&fakeSource{name: "good", lines: []string{"echo hi"}},
		}, NewFilter("tnm"), nil)

		commands, err := resolver.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"echo hi"}, commands)
	})

	t.Run("skips sources with no usable lines", func(t *testing.T) {
		resolver := NewResolverWithSources([]Source{
			&fakeSource{name: "noise", lines: []string{"", "x", "tnm -l"}},
			&fakeSource{name: "good", lines: []string{"make build"}},
		}, NewFilter("tnm"), nil)

		commands, err := resolver.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"make build"}, commands)
	})

	t.Run("short-circuits on the first usable source", func(t *testing.T) {
		resolver := NewResolverWithSources([]Source{
			&fakeSource{name: "first", lines: []string{"git pull"}},
			&fakeSource{name: "second", lines: []string{"never returned"}},
		}, NewFilter("tnm"), nil)

		commands, err := resolver.Resolve(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"git pull"}, commands)
	})

	t.Run("exhausted chain fails with ErrHistoryUnavailable", func(t *testing.T) {
		resolver := NewResolverWithSources([]Source{
			&fakeSource{name: "broken", err: errors.New("boom")},
			&fakeSource{name: "empty"},
		}, NewFilter("tnm"), nil)

		_, err := resolver.Resolve(1)
		assert.ErrorIs(t, err, ErrHistoryUnavailable)
	})
}

func TestNewResolverSourceOrder(t *testing.T) {
	home := t.TempDir()
	histFile := filepath.Join(t.TempDir(), "custom_history")

	writeFile := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	t.Run("histfile override wins over shell defaults", func(t *testing.T) {
		writeFile(histFile, "from custom\n")
		writeFile(filepath.Join(home, ".bash_history"), "from bash\n")

		resolver := NewResolver(Options{
			HistFile: histFile,
			HomeDir:  home,
		})

		command, err := resolver.ResolveLast()
		require.NoError(t, err)
		assert.Equal(t, "from custom", command)
	})

	t.Run("falls through to zsh history when others are absent", func(t *testing.T) {
		home := t.TempDir()
		writeFile(filepath.Join(home, ".zsh_history"), ": 1700000000:0;from zsh\n")

		resolver := NewResolver(Options{
			HistFile: filepath.Join(home, "no_such_histfile"),
			HomeDir:  home,
		})

		command, err := resolver.ResolveLast()
		require.NoError(t, err)
		assert.Equal(t, "from zsh", command)
	})

	t.Run("no sources at all fails", func(t *testing.T) {
		home := t.TempDir()
		resolver := NewResolver(Options{
			HistFile: filepath.Join(home, "no_such_histfile"),
			HomeDir:  home,
		})

		_, err := resolver.ResolveLast()
		assert.ErrorIs(t, err, ErrHistoryUnavailable)
	})
}

func TestResolveClampsCount(t *testing.T) {
	source := &fakeSource{name: "fake", lines: []string{"echo one", "echo two"}}
	resolver := NewResolverWithSources([]Source{source}, NewFilter("tnm"), nil)

	commands, err := resolver.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo two"}, commands)
}
