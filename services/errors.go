package services

import "errors"

// ValidationError is a client-side precondition failure. It is raised before
// any network call and carries a stable reason code plus the text shown to
// the user.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}

// ErrNoSession is returned by VerifyToken when no token is stored; the caller
// routes straight to the auth screen without touching the network.
var ErrNoSession = errors.New("nenhuma sessão armazenada")
