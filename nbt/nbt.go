// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nbt

import (
	"io"

	"github.com/born-ml/nbt/internal/nbt"
)

// Type aliases for public API

// Kind identifies the type of a tag. Values 0 through 12 are defined.
type Kind = nbt.Kind

// Tag kind constants.
const (
	KindEnd       Kind = nbt.KindEnd
	KindByte      Kind = nbt.KindByte
	KindShort     Kind = nbt.KindShort
	KindInt       Kind = nbt.KindInt
	KindLong      Kind = nbt.KindLong
	KindFloat     Kind = nbt.KindFloat
	KindDouble    Kind = nbt.KindDouble
	KindByteArray Kind = nbt.KindByteArray
	KindString    Kind = nbt.KindString
	KindList      Kind = nbt.KindList
	KindCompound  Kind = nbt.KindCompound
	KindIntArray  Kind = nbt.KindIntArray
	KindLongArray Kind = nbt.KindLongArray
)

// MaxDepth bounds list and compound nesting on read and write.
const MaxDepth = nbt.MaxDepth

// Tag is a single NBT value. The set of implementations is closed.
type Tag = nbt.Tag

// Scalar and array tags.
type (
	End       = nbt.End
	Byte      = nbt.Byte
	Short     = nbt.Short
	Int       = nbt.Int
	Long      = nbt.Long
	Float     = nbt.Float
	Double    = nbt.Double
	ByteArray = nbt.ByteArray
	String    = nbt.String
	IntArray  = nbt.IntArray
	LongArray = nbt.LongArray
)

// List is an ordered sequence of tags sharing one element kind.
type List = nbt.List

// Compound is an ordered collection of uniquely named tags.
type Compound = nbt.Compound

// Entry is one named member of a Compound.
type Entry = nbt.Entry

// NamedTag is a root tag together with its name.
type NamedTag = nbt.NamedTag

// KindError reports an accessor applied to a tag of another kind.
type KindError = nbt.KindError

// Errors returned by the codec and the tag model.
var (
	ErrUnexpectedEndOfStream = nbt.ErrUnexpectedEndOfStream
	ErrUnknownTagKind        = nbt.ErrUnknownTagKind
	ErrNegativeLength        = nbt.ErrNegativeLength
	ErrInvalidUTF8           = nbt.ErrInvalidUTF8
	ErrWrongTagKind          = nbt.ErrWrongTagKind
	ErrTypeMismatch          = nbt.ErrTypeMismatch
	ErrHeterogeneousList     = nbt.ErrHeterogeneousList
	ErrStringTooLong         = nbt.ErrStringTooLong
	ErrMaxDepth              = nbt.ErrMaxDepth
	ErrNilTag                = nbt.ErrNilTag
	ErrCyclicTag             = nbt.ErrCyclicTag
	ErrTrailingData          = nbt.ErrTrailingData
)

// Parse reads exactly one root tag from r. When named is true the root
// carries a name; otherwise NamedTag.Name is empty.
func Parse(r io.Reader, named bool) (NamedTag, error) {
	return nbt.Parse(r, named)
}

// ParseBytes parses data as a single root tag and rejects trailing bytes.
func ParseBytes(data []byte, named bool) (NamedTag, error) {
	return nbt.ParseBytes(data, named)
}

// Write serializes root to w.
func Write(w io.Writer, root NamedTag, named bool) error {
	return nbt.Write(w, root, named)
}

// Marshal serializes root into a new byte slice.
func Marshal(root NamedTag, named bool) ([]byte, error) {
	return nbt.Marshal(root, named)
}

// New builds a tag of the given kind from a Go payload.
func New(kind Kind, payload any) (Tag, error) {
	return nbt.New(kind, payload)
}

// NewList returns an empty list declaring elemKind.
func NewList(elemKind Kind) *List {
	return nbt.NewList(elemKind)
}

// ListOf builds a list from tags, which must all share one kind.
func ListOf(tags ...Tag) (*List, error) {
	return nbt.ListOf(tags...)
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return nbt.NewCompound()
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Tag) bool {
	return nbt.Equal(a, b)
}

// Typed accessors. Each fails with *KindError when t has another kind.

func AsByte(t Tag) (int8, error)          { return nbt.AsByte(t) }
func AsShort(t Tag) (int16, error)        { return nbt.AsShort(t) }
func AsInt(t Tag) (int32, error)          { return nbt.AsInt(t) }
func AsLong(t Tag) (int64, error)         { return nbt.AsLong(t) }
func AsFloat(t Tag) (float32, error)      { return nbt.AsFloat(t) }
func AsDouble(t Tag) (float64, error)     { return nbt.AsDouble(t) }
func AsByteArray(t Tag) ([]byte, error)   { return nbt.AsByteArray(t) }
func AsString(t Tag) (string, error)      { return nbt.AsString(t) }
func AsList(t Tag) (*List, error)         { return nbt.AsList(t) }
func AsCompound(t Tag) (*Compound, error) { return nbt.AsCompound(t) }
func AsIntArray(t Tag) ([]int32, error)   { return nbt.AsIntArray(t) }
func AsLongArray(t Tag) ([]int64, error)  { return nbt.AsLongArray(t) }
