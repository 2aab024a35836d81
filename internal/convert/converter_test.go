package convert

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nbt/internal/nbt"
)

func TestFunc_TypeMismatch(t *testing.T) {
	r := NewRegistry(Config{})
	conv := Func(
		func(h health) (nbt.Tag, error) { return nbt.Int(h), nil },
		func(t nbt.Tag) (health, error) {
			i, err := nbt.AsInt(t)
			return health(i), err
		},
	)
	// Registered under the wrong type on purpose.
	require.NoError(t, r.RegisterConverter(reflect.TypeFor[int32](), conv))

	_, err := r.ToTag(int32(1))
	assert.ErrorIs(t, err, ErrConversion)

	_, err = ToNative[int32](r, nbt.Int(1))
	assert.ErrorIs(t, err, ErrConversion)
}

func TestFunc_PropagatesErrors(t *testing.T) {
	r := NewRegistry(Config{})
	require.NoError(t, Register[health](r, Func(
		func(h health) (nbt.Tag, error) { return nbt.Int(h), nil },
		func(t nbt.Tag) (health, error) {
			i, err := nbt.AsInt(t)
			return health(i), err
		},
	)))

	_, err := ToNative[health](r, nbt.String("x"))
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, nbt.ErrWrongTagKind)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, nbt.KindString, convErr.Kind)
	assert.Equal(t, reflect.TypeFor[health](), convErr.Target)
}

func TestInstantiate(t *testing.T) {
	c, err := instantiate(reflect.TypeFor[healthConverter]())
	require.NoError(t, err)
	assert.IsType(t, healthConverter{}, c)

	c, err = instantiate(reflect.TypeFor[halfHealthConverter]())
	require.NoError(t, err)
	assert.IsType(t, &halfHealthConverter{}, c)

	_, err = instantiate(reflect.TypeFor[string]())
	assert.ErrorIs(t, err, ErrInvalidConverterDeclaration)
}
