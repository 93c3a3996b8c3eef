package network

import (
	"errors"
	"fmt"
)

// ErrTransportExhausted is returned once every attempt of a request failed at the transport level.
var ErrTransportExhausted = errors.New("transport retries exhausted")

// StatusError reports a non-2xx response whose body could not be decoded.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}
