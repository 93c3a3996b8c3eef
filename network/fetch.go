package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anicat-cli/anicat/log"
	"github.com/avast/retry-go/v4"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status line is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get fetches rawURL, retrying only on transport failure (dial, TLS, timeout,
// truncated body). Any HTTP response, whatever its status, ends the loop.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	resp, err := retry.DoWithData(
		func() (*Response, error) {
			return c.attempt(ctx, rawURL)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return retry.IsRecoverable(err) && ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("GET %s: attempt %d failed: %v", rawURL, n+1, err)
		}),
	)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var unrecoverable *requestError
		if errors.As(err, &unrecoverable) {
			return nil, unrecoverable.err
		}
		return nil, fmt.Errorf("GET %s: %w: %w", rawURL, ErrTransportExhausted, err)
	}

	return resp, nil
}

// requestError marks failures that retrying cannot fix.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func (c *Client) attempt(ctx context.Context, rawURL string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, retry.Unrecoverable(&requestError{fmt.Errorf("rate limit: %w", err)})
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(&requestError{fmt.Errorf("create request: %w", err)})
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debugf("GET %s", rawURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// GetJSON fetches rawURL and decodes the body into v. The body is decoded
// regardless of the status line since upstreams embed their own status in
// the payload; a non-2xx response that does not decode yields a *StatusError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		if !resp.OK() {
			return &StatusError{URL: rawURL, Code: resp.StatusCode}
		}
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}

	return nil
}
