package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultTimeout bounds how long Graceful waits for in-flight work.
const DefaultTimeout = 10 * time.Second

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}

// Graceful runs stop with a fresh deadline of timeout. If stop does not
// return before the deadline, force is called and ErrForced is returned.
func Graceful(timeout time.Duration, stop func(ctx context.Context) error, force func()) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- stop(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if force != nil {
			force()
		}
		return ErrForced
	}
}
