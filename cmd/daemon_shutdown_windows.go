//go:build windows

package cmd

import (
	"context"
	"os"
	"os/signal"
)

// setupShutdownHandler returns a context canceled on the first interrupt.
// Windows has no SIGTERM.
func setupShutdownHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx, cancel
}
