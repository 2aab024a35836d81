package nbt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// MaxDepth is the deepest container nesting accepted on read or write.
const MaxDepth = 512

// arrayChunk bounds how much memory a declared array length can claim
// before the bytes are actually present in the stream.
const arrayChunk = 64 << 10

// NamedTag is a root tag together with its name. Name is empty when the
// stream was read in unnamed mode or the root is End.
type NamedTag struct {
	Name string
	Tag  Tag
}

// ErrTrailingData is returned by ParseBytes when bytes remain after the root.
var ErrTrailingData = errors.New("trailing data after root tag")

// Parse reads one tag tree from r.
//
// When named is true the root carries a name field, as NBT files do. When
// false the root is read as kind id followed directly by the payload.
// Parse never reads past the end of the root tag; r is not closed.
func Parse(r io.Reader, named bool) (NamedTag, error) {
	p := &parser{r: r}
	return p.parse(named)
}

// ParseBytes parses a complete buffer. Bytes left over after the root tag
// fail with ErrTrailingData.
func ParseBytes(data []byte, named bool) (NamedTag, error) {
	r := bytes.NewReader(data)
	root, err := Parse(r, named)
	if err != nil {
		return NamedTag{}, err
	}
	if r.Len() > 0 {
		return NamedTag{}, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Len())
	}
	return root, nil
}

type parser struct {
	r     io.Reader
	buf   [8]byte
	depth int
}

func (p *parser) parse(named bool) (NamedTag, error) {
	kind, err := p.readKind()
	if err != nil {
		return NamedTag{}, fmt.Errorf("read root kind: %w", err)
	}
	if kind == KindEnd {
		return NamedTag{Tag: End{}}, nil
	}

	var root NamedTag
	if named {
		if root.Name, err = p.readString(); err != nil {
			return NamedTag{}, fmt.Errorf("read root name: %w", err)
		}
	}

	if root.Tag, err = p.parsePayload(kind); err != nil {
		return NamedTag{}, fmt.Errorf("read root %s: %w", kind, err)
	}
	return root, nil
}

// readFull fills b, reporting a short stream as ErrUnexpectedEndOfStream.
func (p *parser) readFull(b []byte) error {
	if _, err := io.ReadFull(p.r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrUnexpectedEndOfStream
		}
		return err
	}
	return nil
}

func (p *parser) readKind() (Kind, error) {
	if err := p.readFull(p.buf[:1]); err != nil {
		return 0, err
	}
	k := Kind(p.buf[0])
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTagKind, p.buf[0])
	}
	return k, nil
}

func (p *parser) readUint16() (uint16, error) {
	if err := p.readFull(p.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(p.buf[:2]), nil
}

func (p *parser) readUint32() (uint32, error) {
	if err := p.readFull(p.buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p.buf[:4]), nil
}

func (p *parser) readUint64() (uint64, error) {
	if err := p.readFull(p.buf[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p.buf[:8]), nil
}

func (p *parser) readString() (string, error) {
	n, err := p.readUint16()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if err := p.readFull(b); err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// readBytes reads exactly n bytes, growing the buffer only as data arrives.
func (p *parser) readBytes(n int64) ([]byte, error) {
	if n <= arrayChunk {
		b := make([]byte, n)
		if err := p.readFull(b); err != nil {
			return nil, err
		}
		return b, nil
	}
	var buf bytes.Buffer
	buf.Grow(arrayChunk)
	if _, err := io.CopyN(&buf, p.r, n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrUnexpectedEndOfStream
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// readArrayLength reads a raw array length, rejecting negative values.
func (p *parser) readArrayLength() (int64, error) {
	v, err := p.readUint32()
	if err != nil {
		return 0, fmt.Errorf("read array length: %w", err)
	}
	n := int32(v) //nolint:gosec // G115: wire format is a signed 32-bit length.
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	return int64(n), nil
}

// parsePayload reads the payload of a tag of the given kind.
//
//nolint:gocyclo,cyclop // One case per kind.
func (p *parser) parsePayload(kind Kind) (Tag, error) {
	switch kind {
	case KindByte:
		if err := p.readFull(p.buf[:1]); err != nil {
			return nil, err
		}
		return Byte(int8(p.buf[0])), nil

	case KindShort:
		v, err := p.readUint16()
		return Short(int16(v)), err //nolint:gosec // G115: bit reinterpretation.

	case KindInt:
		v, err := p.readUint32()
		return Int(int32(v)), err //nolint:gosec // G115: bit reinterpretation.

	case KindLong:
		v, err := p.readUint64()
		return Long(int64(v)), err //nolint:gosec // G115: bit reinterpretation.

	case KindFloat:
		v, err := p.readUint32()
		return Float(math.Float32frombits(v)), err

	case KindDouble:
		v, err := p.readUint64()
		return Double(math.Float64frombits(v)), err

	case KindString:
		s, err := p.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case KindByteArray:
		n, err := p.readArrayLength()
		if err != nil {
			return nil, err
		}
		b, err := p.readBytes(n)
		if err != nil {
			return nil, err
		}
		return ByteArray(b), nil

	case KindIntArray:
		return p.parseIntArray()

	case KindLongArray:
		return p.parseLongArray()

	case KindList:
		return p.parseList()

	case KindCompound:
		return p.parseCompound()

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTagKind, byte(kind))
	}
}

func (p *parser) parseIntArray() (Tag, error) {
	n, err := p.readArrayLength()
	if err != nil {
		return nil, err
	}
	b, err := p.readBytes(n * 4)
	if err != nil {
		return nil, err
	}
	arr := make(IntArray, n)
	for i := range arr {
		arr[i] = int32(binary.BigEndian.Uint32(b[i*4:])) //nolint:gosec // G115: bit reinterpretation.
	}
	return arr, nil
}

func (p *parser) parseLongArray() (Tag, error) {
	n, err := p.readArrayLength()
	if err != nil {
		return nil, err
	}
	b, err := p.readBytes(n * 8)
	if err != nil {
		return nil, err
	}
	arr := make(LongArray, n)
	for i := range arr {
		arr[i] = int64(binary.BigEndian.Uint64(b[i*8:])) //nolint:gosec // G115: bit reinterpretation.
	}
	return arr, nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("%w: %d", ErrMaxDepth, MaxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseList() (Tag, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.readFull(p.buf[:1]); err != nil {
		return nil, fmt.Errorf("read list element kind: %w", err)
	}
	elemKind := Kind(p.buf[0])

	v, err := p.readUint32()
	if err != nil {
		return nil, fmt.Errorf("read list length: %w", err)
	}
	n := int32(v) //nolint:gosec // G115: wire format is a signed 32-bit length.

	// Non-positive lengths are an empty list whatever the declared kind.
	if n <= 0 {
		return &List{elemKind: elemKind}, nil
	}
	if !elemKind.Valid() {
		return nil, fmt.Errorf("%w: list element kind %d", ErrUnknownTagKind, byte(elemKind))
	}
	if elemKind == KindEnd {
		return nil, fmt.Errorf("%w: list of End with %d elements", ErrTypeMismatch, n)
	}

	l := &List{elemKind: elemKind, items: make([]Tag, 0, min(int(n), arrayChunk))}
	for i := int32(0); i < n; i++ {
		t, err := p.parsePayload(elemKind)
		if err != nil {
			return nil, fmt.Errorf("read list element %d: %w", i, err)
		}
		l.items = append(l.items, t)
	}
	return l, nil
}

func (p *parser) parseCompound() (Tag, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	c := NewCompound()
	for {
		kind, err := p.readKind()
		if err != nil {
			return nil, fmt.Errorf("read compound entry kind: %w", err)
		}
		if kind == KindEnd {
			return c, nil
		}

		name, err := p.readString()
		if err != nil {
			return nil, fmt.Errorf("read compound entry name: %w", err)
		}

		t, err := p.parsePayload(kind)
		if err != nil {
			return nil, fmt.Errorf("read compound entry %q: %w", name, err)
		}
		c.put(name, t)
	}
}
