package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/dueline/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// ConfigErr holds the validation failure of Config, if any. Commands
	// that need a working engine refuse to start when it is set.
	ConfigErr error
}

// LogToStderr is the --log-file value that sends logs to stderr.
const LogToStderr = "-"

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dueline", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/dueline/dueline.log
// On Linux: $XDG_STATE_HOME/dueline/dueline.log (defaults to ~/.local/state/dueline/dueline.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "dueline", "dueline.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "dueline", "dueline.log")
	}

	return filepath.Join(home, ".local", "state", "dueline", "dueline.log")
}

// ResolveLogFile maps the --log-file flag to a logutils path. An empty path
// means stderr.
func (f *Flags) ResolveLogFile() string {
	switch f.LogFile {
	case LogToStderr:
		return ""
	case "":
		return DefaultLogFile()
	default:
		return f.LogFile
	}
}
