package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrChannelsExhausted    = errors.New("no transaction channel available")
	ErrChannelBusy          = errors.New("transaction channel is busy")
	ErrTransport            = errors.New("transport failure")
	ErrTransactionCancelled = errors.New("transaction cancelled")
	ErrMissingActivityID    = errors.New("created activity has no uuid")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSecretNotFound       = errors.New("secret not found")
)

// ServerError is a non-2xx answer from the service. Code and Description come
// from the error body when it could be parsed.
type ServerError struct {
	Status      int
	Code        string
	Description string
}

func (e *ServerError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("server error %d: %s: %s", e.Status, e.Code, e.Description)
	case e.Code != "":
		return fmt.Sprintf("server error %d: %s", e.Status, e.Code)
	default:
		return fmt.Sprintf("server error: status %d", e.Status)
	}
}

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
