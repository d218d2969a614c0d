package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewSessionLogger opens (creating if needed) a zerolog file logger
// under dir, tagged with a random session id so concurrent runs'
// lines can still be told apart when the log is tailed. A raw-mode TTY
// program cannot log to stdout/stderr while it is running — doing so
// would corrupt the frame the renderer just painted — so, grounded on
// the pack's own file-logging setup for a terminal-driving program,
// every diagnostic goes to this file instead.
func NewSessionLogger(dir string) (zerolog.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return zerolog.Nop(), func() error { return nil }, fmt.Errorf("creating log dir: %w", err)
	}

	logPath := filepath.Join(dir, "ccode.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, fmt.Errorf("opening log file: %w", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(file).With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()

	return logger, file.Close, nil
}

// DefaultLogDir returns the directory NewSessionLogger should use when
// the caller has no stronger preference: $XDG_STATE_HOME/ccode/logs,
// falling back to $HOME/.local/state/ccode/logs.
func DefaultLogDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "ccode", "logs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "ccode", "logs"), nil
}
