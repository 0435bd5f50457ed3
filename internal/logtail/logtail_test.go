package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "zero",
			maxLines: 0,
			expected: nil,
		},
		{
			name:     "negative",
			maxLines: -1,
			expected: nil,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "info with fields",
			input:    `{"lvl":"info","time":"2026-10-18T14:32:15.123Z","seq":3,"bytes":120,"msg":"reloaded"}`,
			expected: "14:32:15 INFO  reloaded bytes=120 seq=3",
		},
		{
			name:     "warning with error",
			input:    `{"lvl":"warning","err":"connection refused","msg":"reload failed"}`,
			expected: `WARNING reload failed err="connection refused"`,
		},
		{
			name:     "bool and string fields",
			input:    `{"lvl":"debug","hidden":true,"controller":"headless","msg":"visibility changed"}`,
			expected: "DEBUG visibility changed controller=headless hidden=true",
		},
		{
			name:     "not json",
			input:    "plain text line",
			expected: "plain text line",
		},
		{
			name:     "json but not an object",
			input:    `[1,2,3]`,
			expected: `[1,2,3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	got := FormatLines([]string{`{"lvl":"info","msg":"a"}`, "b"})
	want := []string{"INFO  a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormatLines() = %q, want %q", got, want)
	}
}
