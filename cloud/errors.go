package cloud

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is used to signal that an operation was called with
	// arguments the provider cannot work with.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotCreated is used to signal that the provider accepted a create
	// request but did not return the identifier of a new resource.
	ErrNotCreated = errors.New("resource was not created")
)

// Error is the generic error returned by provider adapters. It carries the
// provider error code and message when the failure came from the provider API.
type Error struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a cloud Error with the given provider code.
func IsCode(err error, code string) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code == code
	}
	return false
}
