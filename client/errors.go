package client

import "fmt"

// The gateway normalizes every failure into one of three types. Callers
// branch with errors.As and never look at raw transport errors or response
// bodies themselves.

// NetworkError means no usable response arrived: DNS failure, refused
// connection, timeout, or a transport drop mid-body.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("erro de conexão com o servidor (%s): %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError means the server answered with something other than the JSON
// contract. Snippet keeps a truncated piece of the raw body for diagnostics.
type ProtocolError struct {
	StatusCode int
	Snippet    string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("resposta inesperada do servidor (HTTP %d): %s", e.StatusCode, e.Snippet)
}

// APIError is a well-formed failure reported by the backend. Message carries
// the backend's own text verbatim so the user sees the precise cause.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &APIError{StatusCode: status, Message: message}
}
