// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nbt

import (
	"github.com/born-ml/nbt/internal/convert"
)

// Converter maps values of one Go type to tags and back.
type Converter = convert.Converter

// Registry resolves converters for Go types and struct properties.
// It is safe for concurrent use.
type Registry = convert.Registry

// Config configures a Registry.
type Config = convert.Config

// ConversionError reports a tag that could not be converted to a Go type.
type ConversionError = convert.ConversionError

// Errors returned by the converter registry.
var (
	ErrNoConverterFound            = convert.ErrNoConverterFound
	ErrConversion                  = convert.ErrConversion
	ErrInvalidConverterDeclaration = convert.ErrInvalidConverterDeclaration
	ErrDuplicateKey                = convert.ErrDuplicateKey
)

// NewRegistry creates an empty registry. Built-in rules are always
// available; registered converters take precedence over them.
func NewRegistry(config Config) *Registry {
	return convert.NewRegistry(config)
}

// Register installs c for values of type T, replacing any previous one.
func Register[T any](r *Registry, c Converter) error {
	return convert.Register[T](r, c)
}

// Func adapts a pair of typed functions into a Converter for T.
func Func[T any](to func(T) (Tag, error), from func(Tag) (T, error)) Converter {
	return convert.Func(to, from)
}

// ToTag converts v to a tag tree.
func ToTag[T any](r *Registry, v T) (Tag, error) {
	return convert.ToTag(r, v)
}

// ToNative converts t into a new value of type T.
func ToNative[T any](r *Registry, t Tag) (T, error) {
	return convert.ToNative[T](r, t)
}

// Natural returns the plain Go form of t: integers and floats at their
// tag width, strings, slices for arrays and lists, map[string]any for
// compounds.
func Natural(t Tag) any {
	return convert.Natural(t)
}
