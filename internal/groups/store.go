// Package groups owns the mapping from group names to Markdown note files
// and the entries written into them. The mapping is a small versionless
// name→path document, loaded wholesale and rewritten wholesale on every
// mutation.
package groups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrGroupNotFound indicates an operation on an unknown group name.
	ErrGroupNotFound = errors.New("group not found")

	// ErrPathConflict indicates a group's note file could not be created
	// or written.
	ErrPathConflict = errors.New("group path not writable")
)

// Group maps a short name to the absolute path of its Markdown note file.
// The file need not exist until the first entry is appended.
type Group struct {
	Name string
	Path string
}

// Store persists the group mapping. Note files themselves are only ever
// appended to; deleting a group removes the mapping, never the file.
type Store struct {
	filePath string
	notesDir string
	logger   *zap.Logger
}

// NewStore creates a store persisting its mapping at filePath. Groups
// created without an explicit path default to notesDir/<name>.md.
func NewStore(filePath string, notesDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		filePath: filePath,
		notesDir: notesDir,
		logger:   logger,
	}
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read group mapping: %w", err)
	}

	mapping := map[string]string{}
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse group mapping: %w", err)
	}
	return mapping, nil
}

func (s *Store) save(mapping map[string]string) error {
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to encode group mapping: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write group mapping: %w", err)
	}
	return nil
}

// CreateOrUpdate maps name to path, synthesizing notesDir/<name>.md when
// path is empty. An existing mapping for name is overwritten; the note file
// itself is never created or truncated here.
func (s *Store) CreateOrUpdate(name string, path string) (Group, error) {
	mapping, err := s.load()
	if err != nil {
		return Group{}, err
	}

	if path == "" {
		path = filepath.Join(s.notesDir, name+".md")
	} else {
		path = s.expandPath(path)
	}

	mapping[name] = path
	if err := s.save(mapping); err != nil {
		return Group{}, err
	}

	s.logger.Debug("group saved", zap.String("name", name), zap.String("path", path))
	return Group{Name: name, Path: path}, nil
}

// Get resolves a single group by name.
func (s *Store) Get(name string) (Group, error) {
	mapping, err := s.load()
	if err != nil {
		return Group{}, err
	}
	path, ok := mapping[name]
	if !ok {
		return Group{}, fmt.Errorf("%w: %q", ErrGroupNotFound, name)
	}
	return Group{Name: name, Path: path}, nil
}

// List returns every group in stable name order, reflecting the persisted
// mapping exactly.
func (s *Store) List() ([]Group, error) {
	mapping, err := s.load()
	if err != nil {
		return nil, err
	}

	names := lo.Keys(mapping)
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) Group {
		return Group{Name: name, Path: mapping[name]}
	}), nil
}

// Delete removes the mapping for name. The underlying note file is left
// untouched.
func (s *Store) Delete(name string) error {
	mapping, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := mapping[name]; !ok {
		return fmt.Errorf("%w: %q", ErrGroupNotFound, name)
	}
	delete(mapping, name)
	return s.save(mapping)
}

// Suggest returns existing group names fuzzy-matching name, best first.
// Used to enrich "group not found" messages.
func (s *Store) Suggest(name string) []string {
	mapping, err := s.load()
	if err != nil {
		return nil
	}

	names := lo.Keys(mapping)
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, len(matches))
	for _, match := range matches {
		suggestions = append(suggestions, match.Str)
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// AppendEntry renders entry and appends it to name's note file, creating
// parent directories and the file as needed. The rendered text is written
// with a single append call so an interrupted run can never leave a
// half-written entry behind.
func (s *Store) AppendEntry(name string, entry Entry) error {
	group, err := s.Get(name)
	if err != nil {
		return err
	}

	rendered := entry.Render()

	if err := os.MkdirAll(filepath.Dir(group.Path), 0755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPathConflict, group.Path, err)
	}

	f, err := os.OpenFile(group.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPathConflict, group.Path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(rendered); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPathConflict, group.Path, err)
	}

	s.logger.Debug(
		"entry appended",
		zap.String("group", name),
		zap.String("path", group.Path),
		zap.Int("commands", len(entry.Commands)),
	)
	return nil
}

// ReadRecent parses name's note file and returns up to limit of the most
// recent entries, oldest first. A note file that does not exist yet yields
// an empty result.
func (s *Store) ReadRecent(name string, limit int) ([]Entry, error) {
	group, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(group.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read group file: %w", err)
	}

	entries := ParseEntries(string(data))
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// expandPath resolves a leading tilde and makes the path absolute.
func (s *Store) expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}
