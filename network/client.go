// Package network provides the HTTP client used for provider communication:
// a tuned connection pool, upstream rate limiting and bounded transport retries.
package network

import (
	"net/http"
	"time"

	"github.com/anicat-cli/anicat/constant"
	"github.com/anicat-cli/anicat/key"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// Options configures a Client.
type Options struct {
	// Attempts is the total number of tries per request on transport failure.
	Attempts int
	// Delay between two attempts.
	Delay time.Duration
	// Timeout of a single attempt.
	Timeout time.Duration
	// RateLimit in requests per second; zero or less disables limiting.
	RateLimit float64
	Burst     int
	// ImpersonateTLS routes requests through a browser-fingerprinted TLS transport.
	ImpersonateTLS bool
	UserAgent      string
}

// OptionsFromConfig reads the http.* configuration keys.
func OptionsFromConfig() Options {
	return Options{
		Attempts:       viper.GetInt(key.HTTPRetryAttempts),
		Delay:          time.Duration(viper.GetInt(key.HTTPRetryDelayMs)) * time.Millisecond,
		Timeout:        time.Duration(viper.GetInt(key.HTTPTimeoutSeconds)) * time.Second,
		RateLimit:      viper.GetFloat64(key.HTTPRateLimit),
		Burst:          viper.GetInt(key.HTTPRateBurst),
		ImpersonateTLS: viper.GetBool(key.HTTPImpersonateTLS),
		UserAgent:      constant.UserAgent,
	}
}

// Client performs GET requests against a JSON API.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	attempts  uint
	delay     time.Duration
	userAgent string
}

// New builds a Client. Attempts below one are raised to one.
func New(opts Options) *Client {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}

	var transport http.RoundTripper = newTransport()
	if opts.ImpersonateTLS {
		transport = newImpersonatingTransport(opts.Timeout)
	}

	c := &Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		attempts:  uint(opts.Attempts),
		delay:     opts.Delay,
		userAgent: opts.UserAgent,
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return c
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters suited to API polling.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
