package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher loads the current version of the watched resource.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context) (Resource, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Resource is one loaded version of the watched resource.
type Resource struct {
	Location    string
	Body        string
	ContentType string
	StatusCode  int
	Size        int64
	Truncated   bool
	FetchedAt   time.Time
}

// ErrNoLocation is returned when the client has nothing to load.
var ErrNoLocation = errors.New("source location is empty")

// Client loads a resource from an http(s) URL or a local file.
type Client struct {
	location  *url.URL
	http      *http.Client
	userAgent string
	maxBody   int64
}

const (
	defaultUserAgent = "framewatch/0.1"
	defaultTimeout   = 5 * time.Second
	defaultMaxBody   = 1 << 20
)

// NewClient builds a Client for location. Plain paths and file:// URLs read
// from disk; http and https URLs are fetched with GET. A timeout <= 0 uses
// the default.
func NewClient(location string, timeout time.Duration) (*Client, error) {
	u, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		location: u,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		maxBody:   defaultMaxBody,
	}, nil
}

// Location returns the normalized location string.
func (c *Client) Location() string {
	if c == nil || c.location == nil {
		return ""
	}
	if c.location.Scheme == "file" {
		return c.location.Path
	}
	return c.location.String()
}

// Fetch loads the resource again. Every call is a fresh load: HTTP requests
// bypass caches.
func (c *Client) Fetch(ctx context.Context) (Resource, error) {
	if c == nil || c.location == nil {
		return Resource{}, ErrNoLocation
	}
	if c.location.Scheme == "file" {
		return c.fetchFile(ctx)
	}
	return c.fetchHTTP(ctx)
}

func (c *Client) fetchHTTP(ctx context.Context) (Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location.String(), nil)
	if err != nil {
		return Resource{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return Resource{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Resource{}, fmt.Errorf("%s returned status %d", c.location.Redacted(), resp.StatusCode)
	}

	body, truncated, err := readCapped(resp.Body, c.maxBody)
	if err != nil {
		return Resource{}, fmt.Errorf("read response: %w", err)
	}
	return Resource{
		Location:    c.Location(),
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Size:        int64(len(body)),
		Truncated:   truncated,
		FetchedAt:   time.Now(),
	}, nil
}

func (c *Client) fetchFile(ctx context.Context) (Resource, error) {
	if err := ctx.Err(); err != nil {
		return Resource{}, err
	}
	file, err := os.Open(c.location.Path)
	if err != nil {
		return Resource{}, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = file.Close() }()

	body, truncated, err := readCapped(file, c.maxBody)
	if err != nil {
		return Resource{}, fmt.Errorf("read source: %w", err)
	}
	return Resource{
		Location:    c.Location(),
		Body:        string(body),
		ContentType: "text/plain",
		Size:        int64(len(body)),
		Truncated:   truncated,
		FetchedAt:   time.Now(),
	}, nil
}

func readCapped(r io.Reader, limit int64) ([]byte, bool, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) > limit {
		return body[:limit], true, nil
	}
	return body, false, nil
}

func parseLocation(location string) (*url.URL, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, ErrNoLocation
	}
	if !strings.Contains(trimmed, "://") {
		abs, err := filepath.Abs(trimmed)
		if err != nil {
			return nil, fmt.Errorf("resolve source path %q: %w", location, err)
		}
		return &url.URL{Scheme: "file", Path: abs}, nil
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", location, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("source %q has no host", location)
		}
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("source %q has no path", location)
		}
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
	u.Fragment = ""
	return u, nil
}
