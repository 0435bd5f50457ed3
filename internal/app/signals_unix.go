//go:build unix

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyVisibility maps SIGUSR1 to hidden and SIGUSR2 to visible.
func notifyVisibility(ctx context.Context, set func(hidden bool)) func() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case sig := <-ch:
				set(sig == syscall.SIGUSR1)
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
