package service

import "errors"

// ErrNotFound covers both missing rows and rows owned by another
// user; the two cases are indistinguishable to the caller.
var ErrNotFound = errors.New("not found")

// InvalidReferenceError reports a related-identifier list containing
// ids that do not exist for the requesting user.
type InvalidReferenceError struct {
	Field string
}

func (e *InvalidReferenceError) Error() string {
	return e.Field + " contains an unknown identifier"
}
