package history

import (
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"
)

// FileSource reads recent commands from one shell history file.
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a source backed by the history file at path.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{
		path:   path,
		logger: logger,
	}
}

// Name identifies the source in diagnostics.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Probe returns the file's cleaned lines in chronological order. A missing
// file is not an error; the resolver simply moves on to the next source.
func (s *FileSource) Probe(count int) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, CleanHistoryLine(line))
	}
	return cleaned, nil
}

// CleanHistoryLine strips shell-specific metadata from a raw history line.
// Zsh extended history prefixes entries with ": <epoch>:<duration>;", which
// must be removed before any length or content checks.
func CleanHistoryLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		if i := strings.Index(trimmed, ";"); i >= 0 {
			trimmed = strings.TrimSpace(trimmed[i+1:])
		}
	}
	return trimmed
}
