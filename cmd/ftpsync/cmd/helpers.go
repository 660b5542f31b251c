package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/tkoeppen/ftpsync/internal/config"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

// loadConfig reads and validates the project configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadCreds reads and validates the connection credentials.
func loadCreds() (*config.Creds, error) {
	creds, err := config.LoadCreds(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	return creds, nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// warnf prints a highlighted warning line unless quiet mode is active.
func warnf(format string, args ...any) {
	if !quiet {
		warnColor.Printf(format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	errColor.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
