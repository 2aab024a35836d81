package nbt

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")
	ErrUnknownTagKind        = errors.New("unknown tag kind")
	ErrNegativeLength        = errors.New("negative array length")
	ErrInvalidUTF8           = errors.New("invalid UTF-8 string")
	ErrWrongTagKind          = errors.New("wrong tag kind")
	ErrTypeMismatch          = errors.New("payload does not match tag kind")
	ErrHeterogeneousList     = errors.New("list elements must share one kind")
	ErrStringTooLong         = errors.New("string exceeds 65535 bytes")
	ErrMaxDepth              = errors.New("maximum nesting depth exceeded")
	ErrNilTag                = errors.New("nil tag")
	ErrCyclicTag             = errors.New("container cannot hold itself")
)

// KindError reports an accessor applied to a tag of a different kind.
type KindError struct {
	Want Kind // Kind the caller asked for
	Got  Kind // Kind the tag actually has
}

// Error implements the error interface.
func (e *KindError) Error() string {
	return fmt.Sprintf("wrong tag kind: want %s, got %s", e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrWrongTagKind.
func (e *KindError) Unwrap() error {
	return ErrWrongTagKind
}
