package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failing struct{ err error }

func (f failing) WriteText(string) error { return f.err }

func TestOSC52_WritesEscapeSequence(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OSC52{Out: &buf}.WriteText("hello"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b]52;c;"), "got %q", out)
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("hello")))
}

func TestOSC52_NoOutput(t *testing.T) {
	assert.Error(t, OSC52{}.WriteText("x"))
}

func TestFallback_StopsAtFirstSuccess(t *testing.T) {
	mem := &Memory{}
	second := &Memory{}
	f := Fallback{failing{errors.New("no xclip")}, mem, second}

	require.NoError(t, f.WriteText("abc"))
	assert.Equal(t, "abc", mem.Last())
	assert.Zero(t, second.Len())
}

func TestFallback_JoinsErrors(t *testing.T) {
	a := errors.New("a")
	b := errors.New("b")
	err := Fallback{failing{a}, failing{b}}.WriteText("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, a)
	assert.ErrorIs(t, err, b)

	assert.Error(t, Fallback{}.WriteText("x"))
}

func TestNew_Modes(t *testing.T) {
	var buf bytes.Buffer
	cases := map[string]Sink{
		"":       Fallback{System{}, OSC52{Out: &buf}},
		"auto":   Fallback{System{}, OSC52{Out: &buf}},
		"System": System{},
		"osc52":  OSC52{Out: &buf},
		" none ": Discard{},
	}
	for mode, want := range cases {
		got, err := New(mode, &buf)
		require.NoError(t, err, mode)
		assert.Equal(t, want, got, mode)
	}

	_, err := New("pigeon", &buf)
	assert.ErrorContains(t, err, "pigeon")
}

func TestMemory_Last(t *testing.T) {
	m := &Memory{}
	assert.Equal(t, "", m.Last())
	require.NoError(t, m.WriteText("one"))
	require.NoError(t, m.WriteText("two"))
	assert.Equal(t, "two", m.Last())
	assert.Equal(t, 2, m.Len())
	require.NoError(t, Discard{}.WriteText("gone"))
}
