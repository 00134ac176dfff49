package schemas

import (
	"errors"
	"fmt"
)

// BridgeError represents an error encountered while talking to the teacher
// backend. It distinguishes transport-level failures (timeouts, connection
// errors) from non-success backend statuses, which carry the status code and
// the raw response body.
type BridgeError struct {
	IsTransportError bool       `json:"is_transport_error"` // True for network/timeout failures
	StatusCode       *int       `json:"status_code,omitempty"`
	RawBody          string     `json:"raw_body,omitempty"` // Backend response body on status errors
	Error            ErrorField `json:"error"`
}

// ErrorField holds the message and underlying error of a BridgeError.
type ErrorField struct {
	Message string `json:"message"`
	Error   error  `json:"-"`
}

// AsError converts the BridgeError into a plain error for call sites that
// carry errors through generic interfaces.
func (e *BridgeError) AsError() error {
	if e.Error.Error != nil {
		return fmt.Errorf("%s: %w", e.Error.Message, e.Error.Error)
	}
	return errors.New(e.Error.Message)
}

// NewStatusError creates a BridgeError for a non-success backend status.
func NewStatusError(statusCode int, body []byte) *BridgeError {
	return &BridgeError{
		StatusCode: &statusCode,
		RawBody:    string(body),
		Error: ErrorField{
			Message: fmt.Sprintf("teacher backend returned status %d", statusCode),
		},
	}
}

// NewTransportError creates a BridgeError for a network-level failure.
func NewTransportError(message string, err error) *BridgeError {
	return &BridgeError{
		IsTransportError: true,
		Error: ErrorField{
			Message: message,
			Error:   err,
		},
	}
}
