package main

import (
	"fmt"
	"io"
	"os"

	"github.com/corvusHold/leasedesk/internal/config"
	"github.com/corvusHold/leasedesk/internal/version"
)

const (
	exitOK     = 0
	exitUsage  = 2
	exitConfig = 3
)

var (
	osExit           = os.Exit
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// handleCLICommand runs a non-server subcommand and reports whether one was given.
func handleCLICommand(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "version", "--version":
		fmt.Fprintln(stdout, version.String())
		osExit(exitOK)
		return true
	case "config":
		osExit(runConfig(args[1:]))
		return true
	case "help", "-h", "--help":
		printHelp()
		osExit(exitOK)
		return true
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		printHelp()
		osExit(exitUsage)
		return true
	}
}

// runConfig validates the environment and prints the effective settings.
func runConfig(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(stderr, "config takes no arguments, got %q\n", args)
		return exitUsage
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return exitConfig
	}
	fmt.Fprintln(stdout, cfg.String())
	return exitOK
}

func printHelp() {
	fmt.Fprintln(stdout, "leasedesk API")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintln(stdout, "  leasedesk-api           Start API server")
	fmt.Fprintln(stdout, "  leasedesk-api config    Validate the environment and print the settings")
	fmt.Fprintln(stdout, "  leasedesk-api version   Print the build version")
}
