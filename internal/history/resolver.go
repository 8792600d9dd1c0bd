// Package history recovers the last command(s) a user ran in their
// interactive shell. Shells differ in how and when they persist history, so
// resolution works through a priority-ordered chain of sources and is
// explicitly best-effort: a command the shell has not yet flushed to disk
// may be missed.
package history

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrHistoryUnavailable is returned when every configured source has been
// exhausted without yielding a single usable command.
var ErrHistoryUnavailable = errors.New("no usable command found in shell history")

// Source is one candidate origin of recent commands. Probe returns raw
// candidate lines in chronological order (oldest first); filtering is the
// resolver's job. A missing or empty source returns no lines and no error.
type Source interface {
	Name() string
	Probe(count int) ([]string, error)
}

// Options configures a Resolver. Zero values fall back to the process
// environment, matching the behavior of an interactive invocation.
type Options struct {
	// LiveQuery enables spawning the user's shell to ask for its in-memory
	// history tail. Fragile, so disabled by default.
	LiveQuery bool

	// Shell is the shell binary used for live queries. Defaults to $SHELL.
	Shell string

	// HistFile overrides the history file location. Defaults to $HISTFILE.
	HistFile string

	// HomeDir is the directory holding the default shell history files.
	// Defaults to the current user's home directory.
	HomeDir string

	// SelfName is the tool's own command name, filtered out of results so
	// that invoking tnm never records tnm itself. Defaults to "tnm".
	SelfName string

	Logger *zap.Logger
}

// Resolver tries each source in priority order and returns the first
// non-empty filtered result.
type Resolver struct {
	sources []Source
	filter  *Filter
	logger  *zap.Logger
}

// NewResolver builds a resolver with the standard source chain:
// an opt-in live shell query, then the $HISTFILE override, then the
// bash and zsh default history files.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	histFile := opts.HistFile
	if histFile == "" {
		histFile = os.Getenv("HISTFILE")
	}
	homeDir := opts.HomeDir
	if homeDir == "" {
		if dir, err := os.UserHomeDir(); err == nil {
			homeDir = dir
		}
	}
	selfName := opts.SelfName
	if selfName == "" {
		selfName = "tnm"
	}

	var sources []Source
	if opts.LiveQuery && shell != "" {
		sources = append(sources, NewLiveSource(shell, logger))
	}
	if histFile != "" {
		sources = append(sources, NewFileSource(histFile, logger))
	}
	if homeDir != "" {
		sources = append(sources,
			NewFileSource(filepath.Join(homeDir, ".bash_history"), logger),
			NewFileSource(filepath.Join(homeDir, ".zsh_history"), logger),
		)
	}

	return NewResolverWithSources(sources, NewFilter(selfName), logger)
}

// NewResolverWithSources builds a resolver over an explicit source chain.
func NewResolverWithSources(sources []Source, filter *Filter, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if filter == nil {
		filter = NewFilter("tnm")
	}
	return &Resolver{
		sources: sources,
		filter:  filter,
		logger:  logger,
	}
}

// Resolve returns up to count recent commands in chronological order
// (oldest first). The first source that yields at least one usable line
// wins; sources that fail or come up empty are skipped. When every source
// is exhausted, Resolve fails with ErrHistoryUnavailable.
func (r *Resolver) Resolve(count int) ([]string, error) {
	if count < 1 {
		count = 1
	}

	for _, source := range r.sources {
		raw, err := source.Probe(count)
		if err != nil {
			r.logger.Debug(
				"history source failed",
				zap.String("source", source.Name()),
				zap.Error(err),
			)
			continue
		}
		if len(raw) == 0 {
			r.logger.Debug("history source empty", zap.String("source", source.Name()))
			continue
		}

		usable := r.filter.Apply(raw)
		r.logger.Debug(
			"history source probed",
			zap.String("source", source.Name()),
			zap.Int("rawLines", len(raw)),
			zap.Int("usableLines", len(usable)),
		)
		if len(usable) == 0 {
			continue
		}

		if len(usable) > count {
			usable = usable[len(usable)-count:]
		}
		return usable, nil
	}

	return nil, ErrHistoryUnavailable
}

// ResolveLast returns the single most recent usable command.
func (r *Resolver) ResolveLast() (string, error) {
	commands, err := r.Resolve(1)
	if err != nil {
		return "", err
	}
	return commands[len(commands)-1], nil
}
