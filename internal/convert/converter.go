package convert

import (
	"fmt"
	"reflect"

	"github.com/born-ml/nbt/internal/nbt"
)

// Converter maps one Go type to and from a tag subtree.
//
// Converters must be stateless: a Registry shares one instance across all
// conversions and goroutines.
type Converter interface {
	// ToTag converts v into a tag.
	ToTag(v reflect.Value) (nbt.Tag, error)

	// FromTag stores the value represented by t into v. v is settable.
	FromTag(t nbt.Tag, v reflect.Value) error
}

var converterType = reflect.TypeFor[Converter]()

// Func adapts a pair of typed functions to a Converter for T.
//
// Example:
//
//	uuid := convert.Func(
//	    func(id UUID) (nbt.Tag, error) { return nbt.IntArray(id.Words()), nil },
//	    func(t nbt.Tag) (UUID, error) { ... },
//	)
func Func[T any](to func(T) (nbt.Tag, error), from func(nbt.Tag) (T, error)) Converter {
	return funcConverter[T]{to: to, from: from}
}

type funcConverter[T any] struct {
	to   func(T) (nbt.Tag, error)
	from func(nbt.Tag) (T, error)
}

func (c funcConverter[T]) ToTag(v reflect.Value) (nbt.Tag, error) {
	x, ok := v.Interface().(T)
	if !ok {
		return nil, fmt.Errorf("%w: converter for %s got %s", ErrConversion, reflect.TypeFor[T](), v.Type())
	}
	return c.to(x)
}

func (c funcConverter[T]) FromTag(t nbt.Tag, v reflect.Value) error {
	var x T
	xv := reflect.ValueOf(&x).Elem()
	if !xv.Type().AssignableTo(v.Type()) {
		return fmt.Errorf("%w: converter for %s cannot fill %s", ErrConversion, xv.Type(), v.Type())
	}
	var err error
	if x, err = c.from(t); err != nil {
		return err
	}
	v.Set(xv)
	return nil
}

// instantiate returns a usable converter of the given concrete type.
// Both value and pointer receivers are accepted.
func instantiate(typ reflect.Type) (Converter, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: nil converter type", ErrInvalidConverterDeclaration)
	}
	switch {
	case typ.Kind() == reflect.Interface:
		return nil, fmt.Errorf("%w: %s is an interface type", ErrInvalidConverterDeclaration, typ)
	case typ.Kind() == reflect.Pointer && typ.Implements(converterType):
		return reflect.New(typ.Elem()).Interface().(Converter), nil
	case typ.Implements(converterType):
		return reflect.New(typ).Elem().Interface().(Converter), nil
	case reflect.PointerTo(typ).Implements(converterType):
		return reflect.New(typ).Interface().(Converter), nil
	default:
		return nil, fmt.Errorf("%w: %s does not implement convert.Converter", ErrInvalidConverterDeclaration, typ)
	}
}
