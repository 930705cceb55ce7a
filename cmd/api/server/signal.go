package server

import (
	"context"
	"os/signal"
	"syscall"
)

// WithSignal derives a context that ends when the process receives SIGINT
// or SIGTERM, driving the graceful-shutdown path in App.Run. The returned
// stop function releases the signal registration.
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
