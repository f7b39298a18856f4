package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned by stores when an insert hits a uniqueness
// constraint. It means the record was already captured.
var ErrDuplicate = errors.New("record already exists")

var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when a run is moved out of a state it is
// not in, including any attempt to leave a terminal state.
var ErrInvalidTransition = errors.New("invalid run status transition")

// TransportError is a network failure or a non-2xx response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SchemaError reports a payload whose shape does not match what the endpoint
// is expected to return. Payload holds the raw body for diagnosis.
type SchemaError struct {
	Endpoint string
	Field    string
	Payload  []byte
}

func (e *SchemaError) Error() string {
	const maxPayload = 512
	p := e.Payload
	if len(p) > maxPayload {
		p = p[:maxPayload]
	}
	return fmt.Sprintf("%s: field %q is missing or malformed; payload: %s", e.Endpoint, e.Field, p)
}

// ValidationError reports a required field missing from a record.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}
