package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/internal/version"
)

// FetchOptions configures URL sources.
type FetchOptions struct {
	Options
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// DefaultTimeout applies when FetchOptions.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Fetch downloads targetURL and loads the body as a source.
func Fetch(ctx context.Context, targetURL string, opts FetchOptions) (*Source, error) {
	u, err := url.Parse(targetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: must be an absolute http(s) URL", targetURL)
	}

	userAgent := coalesce(opts.UserAgent, version.UserAgent())
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)
	if opts.MaxSize > 0 {
		// One byte over the limit is enough to report ErrTooLarge.
		c.MaxBodySize = int(opts.MaxSize) + 1
	}
	logger.Debug("fetch configured", "url", targetURL, "user_agent", userAgent, "timeout", timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var (
		body        []byte
		contentType string
		fetchErr    error
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		contentType = r.Headers.Get("Content-Type")
		logger.Debug("fetch response received",
			"status", r.StatusCode,
			"content_type", contentType,
			"body_size", len(r.Body))
	})
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error (status %d): %w", status, err)
		logger.Debug("fetch error", "status", status, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return nil, fmt.Errorf("failed to visit URL: %w", err)
	}
	c.Wait()
	if fetchErr != nil {
		return nil, fetchErr
	}

	if contentType == "" {
		contentType = detectContentType(u.Path, body)
	}
	return fromBytes(body, targetURL, contentType, opts.Options)
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
