package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/loopwork-ai/mcpcall/mcp"
)

// Exit codes, one per failure class so scripts can branch on them.
const (
	exitOK        = 0
	exitNotReady  = 2 // readiness timeout, or unusable input such as bad --params JSON
	exitTransport = 3 // HTTP-level failure
	exitFailure   = 4 // protocol errors and everything else
)

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var readyErr *mcp.ReadinessTimeoutError
	if errors.As(err, &readyErr) || errors.Is(err, errInvalidParams) {
		return exitNotReady
	}

	var transportErr *mcp.TransportError
	if errors.As(err, &transportErr) {
		return exitTransport
	}

	return exitFailure
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rootCmd.ExecuteContext(ctx)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
