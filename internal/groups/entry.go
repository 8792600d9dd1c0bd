package groups

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampFormat is the fixed wall-clock format used in rendered entries.
const TimestampFormat = "2006-01-02 15:04:05"

// entrySeparator terminates every rendered entry. Group files are parsed
// back by splitting on it, so it is part of the on-disk contract.
const entrySeparator = "\n---\n"

// Entry is one captured note. Entries are immutable once written; the only
// mutation a group file ever sees is another entry appended after it.
type Entry struct {
	Title       string
	Timestamp   time.Time
	Cwd         string
	Commands    []string
	Description string
}

// Render produces the exact Markdown text appended to a group file:
//
//	# <title>
//
//	*Saved: <timestamp> — cwd: <cwd>*
//
//	```bash
//	<command>
//	```
//	<description>
//
//	---
//
// Session imports put each captured command on its own line inside the
// fenced block, in chronological order. The full text is built in memory so
// the caller can write it with a single append.
func (e Entry) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Title)
	fmt.Fprintf(&b, "*Saved: %s — cwd: %s*\n\n", e.Timestamp.Format(TimestampFormat), e.Cwd)
	b.WriteString("```bash\n")
	for _, command := range e.Commands {
		b.WriteString(command)
		b.WriteByte('\n')
	}
	b.WriteString("```\n")
	b.WriteString(e.Description)
	b.WriteByte('\n')
	b.WriteString(entrySeparator)
	return b.String()
}

var savedLinePattern = regexp.MustCompile(`^\*Saved: (.+) — cwd: (.+)\*$`)

// ParseEntries parses the full content of a group file back into entries,
// oldest first. Chunks that do not look like rendered entries are skipped.
func ParseEntries(content string) []Entry {
	chunks := strings.Split(content, entrySeparator)
	entries := make([]Entry, 0, len(chunks))
	for _, chunk := range chunks {
		if entry, ok := parseEntry(chunk); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func parseEntry(chunk string) (Entry, bool) {
	lines := strings.Split(chunk, "\n")

	var entry Entry
	var sawTitle, sawFence bool
	var description []string

	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case !sawTitle && strings.HasPrefix(line, "# "):
			entry.Title = strings.TrimPrefix(line, "# ")
			sawTitle = true
		case sawTitle && savedLinePattern.MatchString(line):
			m := savedLinePattern.FindStringSubmatch(line)
			if ts, err := time.ParseInLocation(TimestampFormat, m[1], time.Local); err == nil {
				entry.Timestamp = ts
			}
			entry.Cwd = m[2]
		case sawTitle && line == "```bash":
			sawFence = true
			for i++; i < len(lines) && lines[i] != "```"; i++ {
				entry.Commands = append(entry.Commands, lines[i])
			}
		case sawFence:
			description = append(description, line)
		}
	}

	if !sawTitle || !sawFence {
		return Entry{}, false
	}
	entry.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return entry, true
}
