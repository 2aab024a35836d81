package nbt

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Write encodes root to w.
//
// When named is true the root name is written after its kind id. An End
// root is written as a single zero byte. Output is buffered internally and
// flushed before Write returns; w is not closed.
func Write(w io.Writer, root NamedTag, named bool) error {
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw}
	if err := wr.write(root, named); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Marshal encodes root and returns the bytes.
func Marshal(root NamedTag, named bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, root, named); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type writer struct {
	w     *bufio.Writer
	buf   [8]byte
	depth int
}

func (w *writer) write(root NamedTag, named bool) error {
	if isNil(root.Tag) {
		return fmt.Errorf("write root: %w", ErrNilTag)
	}
	kind := root.Tag.Kind()
	if err := w.w.WriteByte(byte(kind)); err != nil {
		return fmt.Errorf("write root kind: %w", err)
	}
	if kind == KindEnd {
		return nil
	}
	if named {
		if err := w.writeString(root.Name); err != nil {
			return fmt.Errorf("write root name: %w", err)
		}
	}
	if err := w.writePayload(root.Tag); err != nil {
		return fmt.Errorf("write root %s: %w", kind, err)
	}
	return nil
}

func (w *writer) writeUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	_, err := w.w.Write(w.buf[:2])
	return err
}

func (w *writer) writeUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

func (w *writer) writeUint64(v uint64) error {
	binary.BigEndian.PutUint64(w.buf[:8], v)
	_, err := w.w.Write(w.buf[:8])
	return err
}

func (w *writer) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	if err := w.writeUint16(uint16(len(s))); err != nil {
		return err
	}
	_, err := w.w.WriteString(s)
	return err
}

func (w *writer) writeLength(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: length %d exceeds int32", ErrTypeMismatch, n)
	}
	return w.writeUint32(uint32(n)) //nolint:gosec // G115: bounded above.
}

// writePayload writes the payload of t without kind id or name.
//
//nolint:gocyclo,cyclop // One case per kind.
func (w *writer) writePayload(t Tag) error {
	switch v := t.(type) {
	case Byte:
		return w.w.WriteByte(byte(v))
	case Short:
		return w.writeUint16(uint16(v)) //nolint:gosec // G115: bit reinterpretation.
	case Int:
		return w.writeUint32(uint32(v)) //nolint:gosec // G115: bit reinterpretation.
	case Long:
		return w.writeUint64(uint64(v)) //nolint:gosec // G115: bit reinterpretation.
	case Float:
		return w.writeUint32(math.Float32bits(float32(v)))
	case Double:
		return w.writeUint64(math.Float64bits(float64(v)))
	case String:
		return w.writeString(string(v))
	case ByteArray:
		if err := w.writeLength(len(v)); err != nil {
			return err
		}
		_, err := w.w.Write(v)
		return err
	case IntArray:
		if err := w.writeLength(len(v)); err != nil {
			return err
		}
		for _, x := range v {
			if err := w.writeUint32(uint32(x)); err != nil { //nolint:gosec // G115: bit reinterpretation.
				return err
			}
		}
		return nil
	case LongArray:
		if err := w.writeLength(len(v)); err != nil {
			return err
		}
		for _, x := range v {
			if err := w.writeUint64(uint64(x)); err != nil { //nolint:gosec // G115: bit reinterpretation.
				return err
			}
		}
		return nil
	case *List:
		return w.writeList(v)
	case *Compound:
		return w.writeCompound(v)
	case End:
		return fmt.Errorf("%w: End has no payload", ErrTypeMismatch)
	case nil:
		return ErrNilTag
	default:
		return fmt.Errorf("%w: %T", ErrUnknownTagKind, t)
	}
}

func (w *writer) enter() error {
	w.depth++
	if w.depth > MaxDepth {
		return fmt.Errorf("%w: %d", ErrMaxDepth, MaxDepth)
	}
	return nil
}

func (w *writer) leave() { w.depth-- }

func (w *writer) writeList(l *List) error {
	if l == nil {
		return ErrNilTag
	}
	if err := w.enter(); err != nil {
		return err
	}
	defer w.leave()

	if err := w.w.WriteByte(byte(l.elemKind)); err != nil {
		return err
	}
	if err := w.writeLength(len(l.items)); err != nil {
		return err
	}
	for i, t := range l.items {
		if t == nil || t.Kind() != l.elemKind {
			return fmt.Errorf("write list element %d: %w", i, ErrHeterogeneousList)
		}
		if err := w.writePayload(t); err != nil {
			return fmt.Errorf("write list element %d: %w", i, err)
		}
	}
	return nil
}

func (w *writer) writeCompound(c *Compound) error {
	if c == nil {
		return ErrNilTag
	}
	if err := w.enter(); err != nil {
		return err
	}
	defer w.leave()

	for _, e := range c.entries {
		if err := w.w.WriteByte(byte(e.Tag.Kind())); err != nil {
			return err
		}
		if err := w.writeString(e.Name); err != nil {
			return fmt.Errorf("write compound entry name %q: %w", e.Name, err)
		}
		if err := w.writePayload(e.Tag); err != nil {
			return fmt.Errorf("write compound entry %q: %w", e.Name, err)
		}
	}
	return w.w.WriteByte(byte(KindEnd))
}
