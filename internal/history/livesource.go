package history

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// liveQueryTimeout bounds the spawned shell. A shell that hangs on
	// startup must not block the capture; the resolver falls back to
	// file-based sources instead.
	liveQueryTimeout = 3 * time.Second

	// liveQueryMargin asks the shell for extra lines beyond the requested
	// count, since startup banners and self-invocations are filtered out
	// after the fact.
	liveQueryMargin = 10
)

// LiveSource asks a freshly spawned interactive shell for its in-memory
// history tail via the `fc` builtin. Spawned shells can emit startup noise
// on stdout, which the resolver's filter pipeline strips; that noise is
// never treated as an error.
type LiveSource struct {
	shell   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewLiveSource creates a live query source for the given shell binary.
func NewLiveSource(shell string, logger *zap.Logger) *LiveSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LiveSource{
		shell:   shell,
		timeout: liveQueryTimeout,
		logger:  logger,
	}
}

// Name identifies the source in diagnostics.
func (s *LiveSource) Name() string {
	return "shell:" + s.shell
}

// Probe runs `<shell> -i -c "fc -ln -N"` with a bounded timeout and returns
// the trimmed output lines, oldest first.
func (s *LiveSource) Probe(count int) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	query := fmt.Sprintf("fc -ln -%d", count+liveQueryMargin)
	cmd := exec.CommandContext(ctx, s.shell, "-i", "-c", query)
	// Interactive shells write prompts and banners to stderr; only stdout
	// carries the history listing.
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("live shell query timed out after %s", s.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("live shell query failed: %w", err)
	}

	raw := strings.Split(string(out), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines, nil
}
