package api

import (
	"context"
	"errors"
	"fmt"
)

// ErrBadResponse marks a 2xx response whose body could not be decoded.
var ErrBadResponse = errors.New("unexpected response body")

// RequestError is a non-2xx status or a transport failure.
// StatusCode is zero for transport and decode failures.
type RequestError struct {
	Op         string
	StatusCode int
	StatusText string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, e.StatusText)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Reason is a short, user-facing description without technical detail.
func (e *RequestError) Reason() string {
	switch {
	case e.StatusCode != 0:
		return e.StatusText
	case errors.Is(e.Err, ErrBadResponse):
		return "unexpected response from service"
	case errors.Is(e.Err, context.Canceled):
		return "cancelled"
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "timed out"
	default:
		return "service unreachable"
	}
}
