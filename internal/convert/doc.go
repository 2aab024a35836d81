// Package convert maps Go values to NBT tag trees and back.
//
// A Registry resolves a Converter for every value it visits, in this order:
//
//  1. a property-level converter declared with DeclareProperty
//  2. a converter registered for the exact Go type with RegisterConverter
//  3. the built-in rules (numbers, strings, slices, maps, structs)
//
// and fails with ErrNoConverterFound when none applies.
//
// Built-in rules:
//
//	int8, uint8, bool     -> Byte
//	int16, uint16         -> Short
//	int32, uint32         -> Int
//	int64, uint64, int    -> Long
//	float32 / float64     -> Float / Double
//	string                -> String
//	[]byte, []int8        -> ByteArray
//	[]int32 / []int64     -> IntArray / LongArray
//	other slices, arrays  -> List
//	map[string]V          -> Compound (keys sorted)
//	struct                -> Compound (fields in declaration order)
//	nbt.Tag               -> passed through unchanged
//
// Struct fields are keyed by the `nbt:"name"` struct tag or, without one,
// by the Go field name. `nbt:"-"` skips a field and `nbt:",omitempty"`
// drops zero values. Decoding ignores compound entries that match no field
// and leaves fields without an entry untouched.
//
// Registration is safe for concurrent use, but callers are expected to
// register converters during initialization, before encode and decode
// traffic starts.
package convert
