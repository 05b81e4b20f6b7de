package repo

import "errors"

// Caller-fixable store failures. Absence is not an error: reads return a nil
// user and Delete returns a zero count for unknown ids. Anything not listed
// here propagates untranslated and the boundary treats it as infrastructure.
var (
	ErrInvalidInput   = errors.New("missing required field")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrUserNotFound   = errors.New("user not found")
)
