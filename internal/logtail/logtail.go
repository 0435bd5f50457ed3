package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed JSON log line.
type Entry struct {
	Level   string
	Time    string
	Message string
	Error   string
	Fields  map[string]string
}

// Parse decodes a JSON log line. Lines that are not JSON objects report false.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	e := Entry{Fields: make(map[string]string)}
	for k, v := range raw {
		s := stringify(v)
		switch k {
		case "lvl", "level":
			e.Level = s
		case "time", "ts":
			e.Time = s
		case "msg", "message":
			e.Message = s
		case "err", "error":
			e.Error = s
		default:
			e.Fields[k] = s
		}
	}
	return e, true
}

// Format renders a log line for display:
//
//	15:04:05 INFO  reloaded seq=3 bytes=120
//
// Lines that do not parse are returned unchanged.
func Format(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	var b strings.Builder
	if ts := shortTime(e.Time); ts != "" {
		b.WriteString(ts)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", strings.ToUpper(e.Level), e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, e.Fields[k])
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " err=%q", e.Error)
	}
	return b.String()
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

// shortTime keeps the clock part of an RFC 3339 timestamp.
func shortTime(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
		return ts[i+1 : i+9]
	}
	return ts
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return "null"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
