package nbt

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// List is an ordered sequence of tags that all share one element kind.
//
// An empty list still carries a declared element kind (End by default).
// The first element appended to an empty list fixes the element kind.
type List struct {
	elemKind Kind
	items    []Tag
}

// NewList creates an empty list with the declared element kind.
func NewList(elemKind Kind) *List {
	return &List{elemKind: elemKind}
}

// ListOf creates a list holding tags. All tags must share one kind;
// otherwise ErrHeterogeneousList is returned. An empty call yields an
// empty list of kind End.
func ListOf(tags ...Tag) (*List, error) {
	l := &List{elemKind: KindEnd, items: make([]Tag, 0, len(tags))}
	for i, t := range tags {
		if err := l.Append(t); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return l, nil
}

func (*List) Kind() Kind { return KindList }
func (*List) tag()       {}

// ElemKind returns the declared element kind.
func (l *List) ElemKind() Kind { return l.elemKind }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Get returns the element at index i.
func (l *List) Get(i int) (Tag, bool) {
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

// Append adds t to the end of the list. On a non-empty list t must match
// the element kind, otherwise ErrHeterogeneousList is returned.
func (l *List) Append(t Tag) error {
	if isNil(t) {
		return ErrNilTag
	}
	k := t.Kind()
	if k == KindEnd {
		return fmt.Errorf("%w: End cannot be a list element", ErrTypeMismatch)
	}
	if reaches(t, l) {
		return fmt.Errorf("%w: list element %d", ErrCyclicTag, len(l.items))
	}
	if len(l.items) == 0 {
		l.elemKind = k
	} else if k != l.elemKind {
		return fmt.Errorf("%w: list of %s cannot hold %s", ErrHeterogeneousList, l.elemKind, k)
	}
	l.items = append(l.items, t)
	return nil
}

// Set replaces the element at index i. t must match the element kind.
func (l *List) Set(i int, t Tag) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("list index %d out of range [0,%d)", i, len(l.items))
	}
	if isNil(t) {
		return ErrNilTag
	}
	if t.Kind() != l.elemKind {
		return fmt.Errorf("%w: list of %s cannot hold %s", ErrHeterogeneousList, l.elemKind, t.Kind())
	}
	if reaches(t, l) {
		return fmt.Errorf("%w: list element %d", ErrCyclicTag, i)
	}
	l.items[i] = t
	return nil
}

// Items returns a copy of the elements.
func (l *List) Items() []Tag {
	return slices.Clone(l.items)
}

// All iterates over index/element pairs.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.items {
			if !yield(i, t) {
				return
			}
		}
	}
}

// String returns the SNBT-style text form of the list.
func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range l.items {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (l *List) equal(o *List) bool {
	if l.elemKind != o.elemKind || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if !Equal(l.items[i], o.items[i]) {
			return false
		}
	}
	return true
}
