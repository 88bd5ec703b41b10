package client

import (
	"errors"
	"fmt"
)

// The client distinguishes exactly two failure kinds. A NetworkError means
// the request failed before a response was obtained; an ApplicationError
// means the server responded with a failure status. Neither is retried
// automatically, and neither leaves any local state changed.

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ApplicationError carries a server failure response.
type ApplicationError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *ApplicationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: server error %d (%s): %s", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: server error %d", e.Op, e.StatusCode)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsApplicationError reports whether err is (or wraps) an ApplicationError.
func IsApplicationError(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
