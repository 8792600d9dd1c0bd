package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/i7mada249/tnm/internal/core"
	"github.com/i7mada249/tnm/internal/groups"
	"github.com/i7mada249/tnm/internal/history"
	"github.com/i7mada249/tnm/internal/journal"
	"github.com/i7mada249/tnm/internal/styles"
	"github.com/i7mada249/tnm/internal/tui"
)

var BUILD_VERSION = "dev"

var (
	newGroup    = flag.String("n", "", "create or update a group; an optional PATH may follow as a positional argument")
	captureName = flag.String("g", "", "capture the last command into the named group")
	deleteName  = flag.String("d", "", "delete a group mapping (the note file is kept)")
	listFlag    = flag.Bool("l", false, "list groups")
	readName    = flag.String("r", "", "show recent entries from the named group")
	limitFlag   = flag.Int("limit", 10, "maximum entries shown with -r")

	commandFlag = flag.String("c", "", "explicit command to record instead of querying shell history")
	importCount = flag.Int("N", 1, "import the last N commands as one session entry")
	titleFlag   = flag.String("t", "", "entry title")
	descFlag    = flag.String("m", "", "entry description")
	yesFlag     = flag.Bool("y", false, "skip confirmation and interactive prompts")
	dryRunFlag  = flag.Bool("dry-run", false, "render the entry without writing it")

	capturesFlag = flag.Int("captures", 0, "show the last N journaled captures across all groups")
	menuFlag     = flag.Bool("menu", false, "open the interactive menu")

	helpFlag    = flag.Bool("h", false, "display help information")
	versionFlag = flag.Bool("ver", false, "display build version")
)

const helpText = `tnm - Terminal Notes Manager

Captures the command you just ran and appends it as a Markdown note to a
named group.

USAGE:
  tnm -n NAME [PATH]      Create or update a group (default path ~/tnm/NAME.md)
  tnm -g NAME             Save the last shell command to a group
  tnm -g NAME -N 5        Save the last 5 commands as one session entry
  tnm -l                  List groups
  tnm -r NAME             Show recent entries of a group
  tnm -d NAME             Delete a group mapping (the file is kept)
  tnm -menu               Open the interactive menu

ENVIRONMENT:
  HISTFILE                Overrides the history file location
  TNM_LIVE_HISTORY=1      Also query the live shell for its history (fragile)
  TNM_DEBUG=1             Verbose logging to stderr and the log file
  NO_COLOR                Disable colored output

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	logger, err := initializeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to initialize logger: %v", err)))
		os.Exit(1)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Debug("-------- new tnm invocation --------", zap.Any("args", os.Args))

	store := groups.NewStore(core.GroupsFile(), core.NotesDir(), logger)

	if err := run(store, logger); err != nil {
		logger.Error("operation failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(store *groups.Store, logger *zap.Logger) error {
	switch {
	case *newGroup != "":
		return runNewGroup(store, *newGroup, flag.Arg(0))
	case *listFlag:
		return runListGroups(store)
	case *deleteName != "":
		return runDeleteGroup(store, *deleteName)
	case *captureName != "":
		return runCapture(store, logger, *captureName)
	case *readName != "":
		return runReadRecent(store, *readName, *limitFlag)
	case *capturesFlag > 0:
		return runCaptures(logger, *capturesFlag)
	case *menuFlag:
		return tui.Run(store, openJournal(logger))
	default:
		fmt.Print(helpText)
		flag.PrintDefaults()
		return nil
	}
}

func runNewGroup(store *groups.Store, name string, path string) error {
	if _, err := store.Get(name); err == nil && !*yesFlag {
		if !confirm(fmt.Sprintf("Group %q already exists. Overwrite its mapping?", name)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	group, err := store.CreateOrUpdate(name, path)
	if err != nil {
		return err
	}

	fmt.Printf("Group %s -> %s saved.\n", styles.TITLE(group.Name), group.Path)
	return nil
}

func runListGroups(store *groups.Store) error {
	all, err := store.List()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No groups defined yet. Create one with: tnm -n NAME [PATH]")
		return nil
	}

	fmt.Println("Defined groups:")
	for _, group := range all {
		fmt.Printf("  %s -> %s\n", styles.TITLE(group.Name), group.Path)
	}
	return nil
}

func runDeleteGroup(store *groups.Store, name string) error {
	if err := store.Delete(name); err != nil {
		return describeGroupError(store, err, name)
	}
	fmt.Printf("Group %s removed. The note file was kept.\n", styles.TITLE(name))
	return nil
}

func runCapture(store *groups.Store, logger *zap.Logger, name string) error {
	group, err := store.Get(name)
	if err != nil {
		return describeGroupError(store, err, name)
	}

	commands, err := resolveCommands(logger)
	if err != nil {
		return err
	}

	for _, command := range commands {
		fmt.Printf("%s %s\n", styles.DIM("captured:"), styles.COMMAND(command))
	}

	title := *titleFlag
	description := *descFlag
	if !*yesFlag && isInteractive() {
		reader := bufio.NewReader(os.Stdin)
		if title == "" {
			title = promptLine(reader, "Title: ")
		}
		if description == "" {
			description = promptLine(reader, "Description: ")
		}
	}
	if title == "" {
		title = fmt.Sprintf("(no title - %s)", name)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = core.HomeDir()
	}

	entry := groups.Entry{
		Title:       title,
		Timestamp:   time.Now(),
		Cwd:         cwd,
		Commands:    commands,
		Description: description,
	}

	if *dryRunFlag {
		fmt.Println("\n--- dry-run output ---")
		fmt.Println()
		fmt.Print(entry.Render())
		return nil
	}

	if err := store.AppendEntry(name, entry); err != nil {
		return err
	}

	recordCapture(logger, group, entry)

	fmt.Println(styles.SUCCESS(fmt.Sprintf("Saved to %s", group.Path)))
	return nil
}

func runReadRecent(store *groups.Store, name string, limit int) error {
	entries, err := store.ReadRecent(name, limit)
	if err != nil {
		return describeGroupError(store, err, name)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries in %s yet.\n", styles.TITLE(name))
		return nil
	}

	for _, entry := range entries {
		fmt.Println(styles.TITLE("# " + entry.Title))
		fmt.Println(styles.DIM(fmt.Sprintf(
			"  saved %s in %s",
			entry.Timestamp.Format(groups.TimestampFormat), entry.Cwd,
		)))
		for _, command := range entry.Commands {
			fmt.Println("  " + styles.COMMAND("$ "+command))
		}
		if entry.Description != "" {
			fmt.Println("  " + entry.Description)
		}
		fmt.Println()
	}
	return nil
}

func runCaptures(logger *zap.Logger, limit int) error {
	j := openJournal(logger)
	if j == nil {
		return errors.New("capture journal is unavailable")
	}

	records, err := j.Recent("", limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No captures journaled yet.")
		return nil
	}

	for _, record := range records {
		fmt.Printf(
			"%s  %s %s %s\n",
			styles.DIM(humanize.Time(record.CreatedAt)),
			styles.TITLE(record.GroupName),
			styles.COMMAND(record.Command),
			styles.DIM("("+record.Title+")"),
		)
	}
	return nil
}

// resolveCommands produces the command lines to record, either from the
// explicit -c override or from the history resolver.
func resolveCommands(logger *zap.Logger) ([]string, error) {
	if *commandFlag != "" {
		return []string{*commandFlag}, nil
	}

	resolver := history.NewResolver(history.Options{
		LiveQuery: os.Getenv("TNM_LIVE_HISTORY") == "1",
		Logger:    logger,
	})

	commands, err := resolver.Resolve(*importCount)
	if errors.Is(err, history.ErrHistoryUnavailable) {
		return nil, fmt.Errorf(
			"couldn't fetch the last command from shell history; pass one explicitly with -c: %w", err,
		)
	}
	if err != nil {
		return nil, err
	}
	return commands, nil
}

// openJournal opens the capture journal, returning nil when it cannot be
// opened. The journal is advisory; the Markdown files are the record.
func openJournal(logger *zap.Logger) *journal.Journal {
	j, err := journal.Open(core.JournalFile())
	if err != nil {
		logger.Warn("capture journal unavailable", zap.Error(err))
		return nil
	}
	return j
}

func recordCapture(logger *zap.Logger, group groups.Group, entry groups.Entry) {
	j := openJournal(logger)
	if j == nil {
		return
	}
	command := strings.Join(entry.Commands, "\n")
	if _, err := j.Record(group.Name, entry.Title, command, entry.Cwd); err != nil {
		logger.Warn("failed to journal capture", zap.Error(err))
	}
}

// describeGroupError enriches a GroupNotFound failure with fuzzy
// suggestions; other errors pass through untouched.
func describeGroupError(store *groups.Store, err error, name string) error {
	if !errors.Is(err, groups.ErrGroupNotFound) {
		return err
	}
	if suggestions := store.Suggest(name); len(suggestions) > 0 {
		return fmt.Errorf("group %q not found; did you mean: %s", name, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("group %q not found; create one with: tnm -n %s [PATH]", name, name)
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func promptLine(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func confirm(question string) bool {
	if !isInteractive() {
		return false
	}
	fmt.Printf("%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func initializeLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.OutputPaths = []string{core.LogFile()}

	if os.Getenv("TNM_DEBUG") == "1" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		loggerConfig.OutputPaths = append(loggerConfig.OutputPaths, "stderr")
	}

	return loggerConfig.Build()
}
