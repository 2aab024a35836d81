package convert

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/born-ml/nbt/internal/nbt"
)

// Common errors.
var (
	ErrNoConverterFound            = errors.New("no converter found")
	ErrConversion                  = errors.New("conversion failed")
	ErrInvalidConverterDeclaration = errors.New("invalid converter declaration")
	ErrDuplicateKey                = errors.New("struct fields share an nbt key")
)

// ConversionError reports a tag whose shape cannot produce the target type.
type ConversionError struct {
	Kind   nbt.Kind     // Kind of the offending tag
	Target reflect.Type // Go type that was being produced
	Path   string       // Location inside the value, e.g. "Inventory[2].id"
	Err    error        // Underlying cause, if any
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s tag to %s", e.Kind, e.Target)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrConversion and the underlying cause.
func (e *ConversionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConversion, e.Err}
	}
	return []error{ErrConversion}
}

func mismatch(t nbt.Tag, target reflect.Type) error {
	kind := nbt.KindEnd
	if t != nil {
		kind = t.Kind()
	}
	return &ConversionError{Kind: kind, Target: target}
}

// conversionFailure reports err from a converter's FromTag as a
// *ConversionError for t and target, unless it already is one.
func conversionFailure(err error, t nbt.Tag, target reflect.Type) error {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return err
	}
	return &ConversionError{Kind: t.Kind(), Target: target, Err: err}
}

// atPath prefixes the location of err with seg.
func atPath(err error, seg string) error {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		c := *convErr
		switch {
		case c.Path == "":
			c.Path = seg
		case c.Path[0] == '[':
			c.Path = seg + c.Path
		default:
			c.Path = seg + "." + c.Path
		}
		return &c
	}
	return fmt.Errorf("%s: %w", seg, err)
}
