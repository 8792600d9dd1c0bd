package history

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"mvdan.cc/sh/v3/syntax"
)

// minCommandLength guards against accidental single-character noise such as
// a stray "x" or "q" ending up as the recorded command.
const minCommandLength = 2

// Filter decides which raw history lines are worth recording.
type Filter struct {
	selfName string
	parser   *syntax.Parser
}

// NewFilter creates a filter that drops blank lines, single-character noise,
// invocations of selfName, and lines that do not parse as shell.
func NewFilter(selfName string) *Filter {
	return &Filter{
		selfName: selfName,
		parser:   syntax.NewParser(),
	}
}

// Apply filters lines, preserving order.
func (f *Filter) Apply(lines []string) []string {
	return lo.Filter(lines, func(line string, _ int) bool {
		return f.Usable(line)
	})
}

// Usable reports whether a single cleaned history line should be kept.
func (f *Filter) Usable(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len([]rune(trimmed)) < minCommandLength {
		return false
	}
	if f.isSelfInvocation(trimmed) {
		return false
	}
	return f.parsesAsShell(trimmed)
}

// isSelfInvocation matches "tnm", "tnm -g foo" and path-qualified forms like
// "/usr/local/bin/tnm -l".
func (f *Filter) isSelfInvocation(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return filepath.Base(fields[0]) == f.selfName
}

// parsesAsShell rejects fragments that are not valid POSIX shell, such as
// the continuation halves of multi-line history entries.
func (f *Filter) parsesAsShell(line string) bool {
	_, err := f.parser.Parse(strings.NewReader(line), "")
	return err == nil
}
