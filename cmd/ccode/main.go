// Command ccode is a minimalist single-file terminal text editor.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stoian02/ccode/editor"
)

var logFile string

func main() {
	root := &cobra.Command{
		Use:     "ccode [file]",
		Short:   "A minimalist terminal text editor",
		Version: editor.CCODE_VERSION,
		Args:    cobra.MaximumNArgs(1),
		RunE:    run,
	}
	root.Flags().StringVar(&logFile, "log-file", "", "write ccode.log into this directory (or into the directory of this file path) instead of the default log directory")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logDir := logFile
	if logDir == "" {
		dir, err := editor.DefaultLogDir()
		if err != nil {
			return fmt.Errorf("resolving log directory: %w", err)
		}
		logDir = dir
	} else {
		logDir = logFileDir(logFile)
	}

	log, closeLog, err := editor.NewSessionLogger(logDir)
	if err != nil {
		return fmt.Errorf("starting session logger: %w", err)
	}
	defer closeLog()

	e := editor.NewEditor(log)

	if err := e.EnableRawMode(); err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	defer e.RestoreTerminal()

	if err := e.Init(); err != nil {
		e.Die("initializing editor: %v", err)
	}

	if len(args) == 1 {
		if err := e.Open(args[0]); err != nil {
			e.Die("%v", err)
		}
	}

	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find | Ctrl-G = help")

	for {
		e.RefreshScreen()
		e.ProcessKeypress()
	}
}

// logFileDir maps a --log-file value to a log directory: an existing
// directory is used as is, any other value is treated as a file path
// and its parent directory is used. NewSessionLogger always names the
// file ccode.log within whatever directory it is given.
func logFileDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
