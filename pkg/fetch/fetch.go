// Package fetch downloads JSON documents over HTTP.
//
// Transient failures (network errors and 5xx responses) are retried with
// exponential backoff; every other failure is returned at once. Bodies are
// capped at [Options.MaxBytes].
//
//	c := fetch.New(fetch.Options{})
//	data, err := c.Get(ctx, "https://api.example.com/users")
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/jsonscope/pkg/buildinfo"
	apperr "github.com/matzehuels/jsonscope/pkg/errors"
)

// Defaults applied by [New] for zero Options fields.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 10 << 20
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// Options configures a [Client].
type Options struct {
	Timeout  time.Duration
	MaxBytes int64
	Attempts int
	Delay    time.Duration // first retry delay; doubles after each attempt
	Headers  map[string]string
}

// Client fetches documents. It is safe for concurrent use.
type Client struct {
	http *http.Client
	opts Options
}

// New creates a client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	return &Client{http: &http.Client{Timeout: opts.Timeout}, opts: opts}
}

// IsURL reports whether s looks like an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Get downloads the body at url.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry(ctx, c.opts.Attempts, c.opts.Delay, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		var re *retryableError
		if errors.As(err, &re) {
			return nil, apperr.Wrap(apperr.ErrCodeUnavailable, re.Err, "fetch %s: %v", url, re.Err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid url %q", url)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jsonscope/"+buildinfo.Version)
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &retryableError{Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBytes+1))
	if err != nil {
		return nil, &retryableError{Err: err}
	}
	if int64(len(data)) > c.opts.MaxBytes {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "response from %s exceeds %d bytes", url, c.opts.MaxBytes)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return apperr.New(apperr.ErrCodeNotFound, "%s: not found", url)
	case code == http.StatusTooManyRequests || code >= 500:
		return &retryableError{Err: fmt.Errorf("status %d", code)}
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "%s: status %d", url, code)
	}
}
