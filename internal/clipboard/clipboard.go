// Package clipboard delivers copy payloads to the user's clipboard.
//
// The system clipboard needs a helper binary (xclip, wl-copy, pbcopy) that is
// often missing over SSH, so the default mode falls back to an OSC 52 escape
// sequence which most terminals forward to the local clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Mode names accepted by New.
const (
	ModeAuto   = "auto"
	ModeSystem = "system"
	ModeOSC52  = "osc52"
	ModeNone   = "none"
)

// ErrUnavailable is returned by System when no clipboard helper is installed.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Sink receives copied text.
type Sink interface {
	WriteText(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52 writes the terminal clipboard escape sequence to Out.
type OSC52 struct {
	Out io.Writer
}

func (o OSC52) WriteText(text string) error {
	if o.Out == nil {
		return errors.New("osc52: no terminal output")
	}
	if _, err := osc52.New(text).WriteTo(o.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Memory keeps copied text in process. Useful for tests and headless runs.
type Memory struct {
	mu    sync.Mutex
	texts []string
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return nil
}

// Last returns the most recent text, or "" when nothing was copied.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// Len returns how many writes were recorded.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.texts)
}

// Discard drops every write.
type Discard struct{}

func (Discard) WriteText(string) error { return nil }

// Fallback tries each sink in order and stops at the first success.
type Fallback []Sink

func (f Fallback) WriteText(text string) error {
	if len(f) == 0 {
		return errors.New("clipboard: no sinks configured")
	}
	var errs []error
	for _, s := range f {
		err := s.WriteText(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// New returns the sink for mode. out is the terminal used by OSC 52.
func New(mode string, out io.Writer) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeAuto:
		return Fallback{System{}, OSC52{Out: out}}, nil
	case ModeSystem:
		return System{}, nil
	case ModeOSC52:
		return OSC52{Out: out}, nil
	case ModeNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard mode %q", mode)
	}
}
