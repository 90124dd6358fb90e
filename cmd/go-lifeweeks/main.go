package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/go-lifeweeks/internal/cli"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// main is the application entry point.
// It delegates execution to runMain so that deferred calls run before
// os.Exit terminates the process.
func main() {
	os.Exit(runMain())
}

// runMain returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		// Cobra already printed the error; this keeps it in the log file too.
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
