package backend

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/animecritique/critique/model"
)

// ErrMissingData is returned when a successful envelope has no data for an operation that needs it.
var ErrMissingData = errors.New("malformed response: success without data")

// ErrNotEnvelope is returned for bodies without a success flag.
var ErrNotEnvelope = errors.New("malformed response: no success flag")

// StatusError is a non-2xx reply that did not carry an envelope.
type StatusError struct {
	Code  int
	Cause error
}

// Error names the status code.
func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Cause)
}

// Unwrap returns the cause.
func (e *StatusError) Unwrap() error {
	return e.Cause
}

func decodeEnvelope(raw []byte) (*model.Envelope, error) {
	var env model.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if env.Success == nil {
		return nil, ErrNotEnvelope
	}
	return &env, nil
}
