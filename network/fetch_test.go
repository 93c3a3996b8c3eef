package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// flakyTransport fails the first `failures` round trips with a transport error.
type flakyTransport struct {
	failures int32
	calls    atomic.Int32
	next     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if f.calls.Add(1) <= f.failures {
		return nil, errors.New("connection reset by peer")
	}
	return f.next.RoundTrip(req)
}

func newTestClient(attempts int, transport http.RoundTripper) *Client {
	c := New(Options{Attempts: attempts, Delay: time.Millisecond, Timeout: 5 * time.Second})
	c.http.Transport = transport
	return c
}

func TestGet(t *testing.T) {
	Convey("Given an upstream answering JSON", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":200}`))
		}))
		defer server.Close()

		Convey("transient transport failures are retried", func() {
			flaky := &flakyTransport{failures: 2, next: http.DefaultTransport}
			c := newTestClient(3, flaky)

			resp, err := c.Get(context.Background(), server.URL)
			So(err, ShouldBeNil)
			So(resp.OK(), ShouldBeTrue)
			So(flaky.calls.Load(), ShouldEqual, 3)
		})

		Convey("exhausting every attempt yields ErrTransportExhausted", func() {
			flaky := &flakyTransport{failures: 10, next: http.DefaultTransport}
			c := newTestClient(3, flaky)

			_, err := c.Get(context.Background(), server.URL)
			So(errors.Is(err, ErrTransportExhausted), ShouldBeTrue)
			So(flaky.calls.Load(), ShouldEqual, 3)
		})

		Convey("a cancelled context is reported as such", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			c := newTestClient(3, http.DefaultTransport)

			_, err := c.Get(ctx, server.URL)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given an upstream answering with an application error", t, func() {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		defer server.Close()

		Convey("the response is not retried", func() {
			c := newTestClient(3, http.DefaultTransport)
			resp, err := c.Get(context.Background(), server.URL)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("GetJSON reports a StatusError", func() {
			c := newTestClient(3, http.DefaultTransport)
			var v map[string]any
			err := c.GetJSON(context.Background(), server.URL, &v)

			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestGetUnrecoverable(t *testing.T) {
	Convey("Given a client allowed three slow attempts", t, func() {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		Convey("a request that cannot be built fails on the first attempt", func() {
			c := New(Options{Attempts: 3, Delay: 300 * time.Millisecond, Timeout: time.Second})

			start := time.Now()
			_, err := c.Get(context.Background(), "http://bad host/\x7f")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "create request")
			So(errors.Is(err, ErrTransportExhausted), ShouldBeFalse)
			So(time.Since(start), ShouldBeLessThan, 250*time.Millisecond)
		})

		Convey("a rate limit wait past the deadline is not a transport failure", func() {
			c := New(Options{Attempts: 3, Delay: 300 * time.Millisecond, Timeout: time.Second, RateLimit: 0.01, Burst: 1})
			_, err := c.Get(context.Background(), server.URL)
			So(err, ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err = c.Get(ctx, server.URL)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "rate limit")
			So(errors.Is(err, ErrTransportExhausted), ShouldBeFalse)
			So(time.Since(start), ShouldBeLessThan, 250*time.Millisecond)
			So(calls.Load(), ShouldEqual, 1)
		})
	})
}

func TestGetJSON(t *testing.T) {
	Convey("Given a body carrying its own status", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404}`))
		}))
		defer server.Close()

		Convey("the payload is decoded whatever the status line says", func() {
			c := newTestClient(1, http.DefaultTransport)
			var v struct {
				Status int `json:"status"`
			}
			So(c.GetJSON(context.Background(), server.URL, &v), ShouldBeNil)
			So(v.Status, ShouldEqual, 404)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("New normalizes its options", t, func() {
		c := New(Options{Attempts: 0, RateLimit: 2})
		So(c.attempts, ShouldEqual, 1)
		So(c.limiter, ShouldNotBeNil)
		So(c.limiter.Burst(), ShouldEqual, 1)

		Convey("and disables limiting for a zero rate", func() {
			So(New(Options{Attempts: 3}).limiter, ShouldBeNil)
		})

		Convey("and switches transport for TLS impersonation", func() {
			_, ok := New(Options{ImpersonateTLS: true}).http.Transport.(*impersonatingTransport)
			So(ok, ShouldBeTrue)
		})
	})
}
