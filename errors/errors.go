package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the whole application, wrapped with fmt.Errorf("%w: ...")
// at the call site so callers can classify with errors.Is.
var (
	ErrNotFound     = errors.New("NOT FOUND")
	ErrInvalidInput = errors.New("INVALID INPUT")
	ErrNoAPIKey     = errors.New("NO API KEY")
	ErrBadResponse  = errors.New("BAD RESPONSE")
	ErrNoRate       = errors.New("NO RATE")
	ErrInternal     = errors.New("INTERNAL")
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}
