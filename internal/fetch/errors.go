package fetch

import (
	"fmt"
	"net/http"
)

// StatusError reports a response whose status was not 2xx.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad response %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RetriesExhaustedError is returned once every attempt of a policy failed.
type RetriesExhaustedError struct {
	URL      string
	Attempts int
	// StatusCode is the last observed HTTP status, 0 when the last attempt
	// failed before a response arrived.
	StatusCode int
	Err        error
}

func (e *RetriesExhaustedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("max retries exceeded for %s after %d attempts (last status %d)", e.URL, e.Attempts, e.StatusCode)
	}
	return fmt.Sprintf("max retries exceeded for %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}
