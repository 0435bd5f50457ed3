//go:build !unix

package app

import "context"

// notifyVisibility is a no-op where SIGUSR1/SIGUSR2 do not exist.
func notifyVisibility(context.Context, func(hidden bool)) func() {
	return func() {}
}
