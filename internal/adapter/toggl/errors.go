package toggl

import "fmt"

// Error is returned by every client call. Inspect the cause with errors.Is
// and errors.As: codec.ErrInvalidEnumValue, codec.ErrMalformedTimestamp,
// endpoint.ErrUnboundPathParameter, *StatusError, or a transport error.
type Error struct {
	Endpoint string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("toggl %s: %v", e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
