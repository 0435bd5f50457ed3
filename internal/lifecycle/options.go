package lifecycle

import (
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/logiface"
)

// DefaultRevertDelay is how long a Notifier stays visible after a trigger.
const DefaultRevertDelay = 5 * time.Second

// Option configures a Poller or a Notifier.
type Option func(*options)

type options struct {
	logger      *logiface.Logger[logiface.Event]
	name        string
	revertDelay time.Duration
}

// WithLogger sets the logger used for debug output. Nil disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName overrides the generated controller id used in log fields.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithRevertDelay sets how long a Notifier stays visible. Values <= 0 keep
// DefaultRevertDelay. Pollers ignore it.
func WithRevertDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.revertDelay = d
		}
	}
}

func resolveOptions(opts []Option) options {
	o := options{
		name:        uuid.NewString(),
		revertDelay: DefaultRevertDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
