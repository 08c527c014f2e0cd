package sse

import (
	"context"
	"log/slog"
	"time"
)

// KeepAliveWriter writes one keep-alive comment
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// KeepAlive pings w every interval until ctx ends or a write fails.
// The returned channel closes once the goroutine has exited, after which
// nothing more is written to w.
func KeepAlive(ctx context.Context, w KeepAliveWriter, interval time.Duration, logger *slog.Logger) <-chan struct{} {
	stopped := make(chan struct{})
	if interval <= 0 {
		close(stopped)
		return stopped
	}

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.WriteKeepAlive(); err != nil {
					logger.Warn("keep-alive write failed, stopping", "error", err)
					return
				}
			}
		}
	}()
	return stopped
}
