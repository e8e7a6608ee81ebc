package memobench

import "errors"

// Errors raised by the range-sum and Fibonacci services. They are wrapped
// with the offending arguments, use errors.Is to match them.
var (
	ErrInvalidRange    = errors.New("invalid range")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidValue    = errors.New("invalid value")
	ErrDomain          = errors.New("domain error")
)
