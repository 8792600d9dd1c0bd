package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir     string
	ConfigDir   string
	GroupsFile  string
	JournalFile string
	LogFile     string
	NotesDir    string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		configBase := os.Getenv("XDG_CONFIG_HOME")
		if configBase == "" {
			configBase = filepath.Join(homeDir, ".config")
		}
		configDir := filepath.Join(configBase, "tnm")

		defaultPaths = &Paths{
			HomeDir:     homeDir,
			ConfigDir:   configDir,
			GroupsFile:  filepath.Join(configDir, "groups.yaml"),
			JournalFile: filepath.Join(configDir, "journal.db"),
			LogFile:     filepath.Join(configDir, "tnm.log"),
			NotesDir:    filepath.Join(homeDir, "tnm"),
		}

		err = os.MkdirAll(defaultPaths.ConfigDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func ConfigDir() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigDir
}

func GroupsFile() string {
	ensureDefaultPaths()
	return defaultPaths.GroupsFile
}

func JournalFile() string {
	ensureDefaultPaths()
	return defaultPaths.JournalFile
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// NotesDir is the base directory for default group note files.
// A group created without an explicit path maps to NotesDir/<name>.md.
func NotesDir() string {
	ensureDefaultPaths()
	return defaultPaths.NotesDir
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
