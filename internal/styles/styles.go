package styles

import (
	"os"

	"github.com/muesli/termenv"
)

// EnvColorProfile honors NO_COLOR and non-TTY output, so styling degrades
// to plain text automatically.
var (
	stdout = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.EnvColorProfile()))
	stderr = termenv.NewOutput(os.Stderr, termenv.WithProfile(termenv.EnvColorProfile()))

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
	SUCCESS = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("10")).
			String()
	}
	TITLE = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("12")).
			Bold().
			String()
	}
	COMMAND = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("11")).
			String()
	}
	DIM = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("8")).
			String()
	}
)
