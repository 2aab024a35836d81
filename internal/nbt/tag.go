package nbt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tag is one node of an NBT tree.
//
// The set of implementations is closed: End, Byte, Short, Int, Long, Float,
// Double, ByteArray, String, *List, *Compound, IntArray and LongArray.
type Tag interface {
	// Kind returns the kind id of the tag.
	Kind() Kind

	// String returns the SNBT-style text form of the tag.
	String() string

	tag()
}

// End marks the end of a Compound on the wire. It has no payload.
type End struct{}

// Byte is an 8-bit signed integer tag.
type Byte int8

// Short is a 16-bit signed integer tag.
type Short int16

// Int is a 32-bit signed integer tag.
type Int int32

// Long is a 64-bit signed integer tag.
type Long int64

// Float is a 32-bit IEEE 754 tag.
type Float float32

// Double is a 64-bit IEEE 754 tag.
type Double float64

// ByteArray is an ordered sequence of bytes.
type ByteArray []byte

// String is a UTF-8 text tag. Its encoded form must fit in 65535 bytes.
type String string

// IntArray is an ordered sequence of 32-bit signed integers.
type IntArray []int32

// LongArray is an ordered sequence of 64-bit signed integers.
type LongArray []int64

func (End) Kind() Kind       { return KindEnd }
func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (ByteArray) Kind() Kind { return KindByteArray }
func (String) Kind() Kind    { return KindString }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }

func (End) tag()       {}
func (Byte) tag()      {}
func (Short) tag()     {}
func (Int) tag()       {}
func (Long) tag()      {}
func (Float) tag()     {}
func (Double) tag()    {}
func (ByteArray) tag() {}
func (String) tag()    {}
func (IntArray) tag()  {}
func (LongArray) tag() {}

func (End) String() string     { return "END" }
func (t Byte) String() string  { return strconv.FormatInt(int64(t), 10) + "b" }
func (t Short) String() string { return strconv.FormatInt(int64(t), 10) + "s" }
func (t Int) String() string   { return strconv.FormatInt(int64(t), 10) }
func (t Long) String() string  { return strconv.FormatInt(int64(t), 10) + "L" }

func (t Float) String() string {
	return strconv.FormatFloat(float64(t), 'g', -1, 32) + "f"
}

func (t Double) String() string {
	return strconv.FormatFloat(float64(t), 'g', -1, 64) + "d"
}

func (t String) String() string { return strconv.Quote(string(t)) }

func (t ByteArray) String() string {
	var sb strings.Builder
	sb.WriteString("[B;")
	for i, v := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(int8(v)), 10))
		sb.WriteByte('b')
	}
	sb.WriteByte(']')
	return sb.String()
}

func (t IntArray) String() string {
	var sb strings.Builder
	sb.WriteString("[I;")
	for i, v := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (t LongArray) String() string {
	var sb strings.Builder
	sb.WriteString("[L;")
	for i, v := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
		sb.WriteByte('L')
	}
	sb.WriteByte(']')
	return sb.String()
}

// New constructs a tag of the given kind from a native payload.
//
// Accepted payloads per kind:
//   - End: nil or End{}
//   - Byte/Short/Int/Long: int8/int16/int32/int64 or the matching tag type
//   - Float/Double: float32/float64 or the matching tag type
//   - ByteArray: []byte; IntArray: []int32; LongArray: []int64
//   - String: string
//   - List: *List or []Tag (all elements of one kind)
//   - Compound: *Compound or []Entry
//
// Any other payload fails with ErrTypeMismatch.
func New(kind Kind, payload any) (Tag, error) {
	switch kind {
	case KindEnd:
		switch payload.(type) {
		case nil, End:
			return End{}, nil
		}
	case KindByte:
		switch v := payload.(type) {
		case int8:
			return Byte(v), nil
		case Byte:
			return v, nil
		}
	case KindShort:
		switch v := payload.(type) {
		case int16:
			return Short(v), nil
		case Short:
			return v, nil
		}
	case KindInt:
		switch v := payload.(type) {
		case int32:
			return Int(v), nil
		case Int:
			return v, nil
		}
	case KindLong:
		switch v := payload.(type) {
		case int64:
			return Long(v), nil
		case Long:
			return v, nil
		}
	case KindFloat:
		switch v := payload.(type) {
		case float32:
			return Float(v), nil
		case Float:
			return v, nil
		}
	case KindDouble:
		switch v := payload.(type) {
		case float64:
			return Double(v), nil
		case Double:
			return v, nil
		}
	case KindByteArray:
		switch v := payload.(type) {
		case []byte:
			return ByteArray(v), nil
		case ByteArray:
			return v, nil
		}
	case KindString:
		switch v := payload.(type) {
		case string:
			return String(v), nil
		case String:
			return v, nil
		}
	case KindIntArray:
		switch v := payload.(type) {
		case []int32:
			return IntArray(v), nil
		case IntArray:
			return v, nil
		}
	case KindLongArray:
		switch v := payload.(type) {
		case []int64:
			return LongArray(v), nil
		case LongArray:
			return v, nil
		}
	case KindList:
		switch v := payload.(type) {
		case *List:
			if v != nil {
				return v, nil
			}
		case []Tag:
			list, err := ListOf(v...)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
			}
			return list, nil
		}
	case KindCompound:
		switch v := payload.(type) {
		case *Compound:
			if v != nil {
				return v, nil
			}
		case []Entry:
			c := NewCompound()
			for _, e := range v {
				if err := c.Set(e.Name, e.Tag); err != nil {
					return nil, fmt.Errorf("%w: entry %q: %w", ErrTypeMismatch, e.Name, err)
				}
			}
			return c, nil
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTagKind, byte(kind))
	}
	return nil, fmt.Errorf("%w: %s cannot hold %T", ErrTypeMismatch, kind, payload)
}

func kindOf(t Tag) Kind {
	if t == nil {
		return KindEnd
	}
	return t.Kind()
}

// AsByte returns the payload of a Byte tag.
func AsByte(t Tag) (int8, error) {
	if v, ok := t.(Byte); ok {
		return int8(v), nil
	}
	return 0, &KindError{Want: KindByte, Got: kindOf(t)}
}

// AsShort returns the payload of a Short tag.
func AsShort(t Tag) (int16, error) {
	if v, ok := t.(Short); ok {
		return int16(v), nil
	}
	return 0, &KindError{Want: KindShort, Got: kindOf(t)}
}

// AsInt returns the payload of an Int tag.
func AsInt(t Tag) (int32, error) {
	if v, ok := t.(Int); ok {
		return int32(v), nil
	}
	return 0, &KindError{Want: KindInt, Got: kindOf(t)}
}

// AsLong returns the payload of a Long tag.
func AsLong(t Tag) (int64, error) {
	if v, ok := t.(Long); ok {
		return int64(v), nil
	}
	return 0, &KindError{Want: KindLong, Got: kindOf(t)}
}

// AsFloat returns the payload of a Float tag.
func AsFloat(t Tag) (float32, error) {
	if v, ok := t.(Float); ok {
		return float32(v), nil
	}
	return 0, &KindError{Want: KindFloat, Got: kindOf(t)}
}

// AsDouble returns the payload of a Double tag.
func AsDouble(t Tag) (float64, error) {
	if v, ok := t.(Double); ok {
		return float64(v), nil
	}
	return 0, &KindError{Want: KindDouble, Got: kindOf(t)}
}

// AsByteArray returns the payload of a ByteArray tag.
func AsByteArray(t Tag) ([]byte, error) {
	if v, ok := t.(ByteArray); ok {
		return []byte(v), nil
	}
	return nil, &KindError{Want: KindByteArray, Got: kindOf(t)}
}

// AsString returns the payload of a String tag.
func AsString(t Tag) (string, error) {
	if v, ok := t.(String); ok {
		return string(v), nil
	}
	return "", &KindError{Want: KindString, Got: kindOf(t)}
}

// AsList returns t as a List.
func AsList(t Tag) (*List, error) {
	if v, ok := t.(*List); ok && v != nil {
		return v, nil
	}
	return nil, &KindError{Want: KindList, Got: kindOf(t)}
}

// AsCompound returns t as a Compound.
func AsCompound(t Tag) (*Compound, error) {
	if v, ok := t.(*Compound); ok && v != nil {
		return v, nil
	}
	return nil, &KindError{Want: KindCompound, Got: kindOf(t)}
}

// AsIntArray returns the payload of an IntArray tag.
func AsIntArray(t Tag) ([]int32, error) {
	if v, ok := t.(IntArray); ok {
		return []int32(v), nil
	}
	return nil, &KindError{Want: KindIntArray, Got: kindOf(t)}
}

// AsLongArray returns the payload of a LongArray tag.
func AsLongArray(t Tag) ([]int64, error) {
	if v, ok := t.(LongArray); ok {
		return []int64(v), nil
	}
	return nil, &KindError{Want: KindLongArray, Got: kindOf(t)}
}

// Equal reports whether a and b are structurally equal: same kinds, same
// shape and same values everywhere. Floating point payloads compare by bit
// pattern, Compound entries compare in order, and empty Lists compare their
// declared element kind.
//
//nolint:gocyclo,cyclop // One case per kind.
func Equal(a, b Tag) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case End:
		return true
	case Byte, Short, Int, Long, String:
		return a == b
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return string(x) == string(b.(ByteArray))
	case IntArray:
		y := b.(IntArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case LongArray:
		y := b.(LongArray)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case *List:
		return x.equal(b.(*List))
	case *Compound:
		return x.equal(b.(*Compound))
	}
	return false
}

// isNil reports whether t is nil or a nil container pointer.
func isNil(t Tag) bool {
	switch x := t.(type) {
	case nil:
		return true
	case *List:
		return x == nil
	case *Compound:
		return x == nil
	}
	return false
}

// reaches reports whether container is t itself or nested anywhere in t.
func reaches(t Tag, container Tag) bool {
	switch x := t.(type) {
	case *List:
		if Tag(x) == container {
			return true
		}
		for _, item := range x.items {
			if reaches(item, container) {
				return true
			}
		}
	case *Compound:
		if Tag(x) == container {
			return true
		}
		for _, e := range x.entries {
			if reaches(e.Tag, container) {
				return true
			}
		}
	}
	return false
}
