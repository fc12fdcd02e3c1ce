package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/pybites-search/internal/cli"
	"github.com/rshade/pybites-search/internal/engine"
	"github.com/rshade/pybites-search/pkg/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	// exitUsage is returned for invalid input such as an unknown content type.
	exitUsage = 2
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var inputErr *engine.InputError
	if errors.As(err, &inputErr) {
		return exitUsage
	}
	return exitError
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode(err))
}
