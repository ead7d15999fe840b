package osutil

import (
	"context"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that is cancelled when the process
// receives SIGINT or SIGTERM.
func SignalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}
