package nbt

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Entry is one named member of a Compound.
type Entry struct {
	Name string
	Tag  Tag
}

// Compound is an ordered mapping from unique names to tags.
//
// Iteration follows insertion order. Setting an existing name replaces the
// value and moves the entry to the end.
type Compound struct {
	entries []Entry
	index   map[string]int
}

// NewCompound creates an empty compound.
func NewCompound() *Compound {
	return &Compound{index: make(map[string]int)}
}

func (*Compound) Kind() Kind { return KindCompound }
func (*Compound) tag()       {}

// Len returns the number of entries.
func (c *Compound) Len() int { return len(c.entries) }

// Get returns the tag stored under name.
func (c *Compound) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].Tag, true
}

// Has reports whether name is present.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Set stores t under name. An existing entry with the same name is removed
// first, so the new entry always lands at the end.
//
// A tag tree never shares nodes: adding c to itself, directly or through a
// nested container, fails with ErrCyclicTag.
func (c *Compound) Set(name string, t Tag) error {
	if isNil(t) {
		return ErrNilTag
	}
	if t.Kind() == KindEnd {
		return fmt.Errorf("%w: End cannot be a compound entry", ErrTypeMismatch)
	}
	if reaches(t, c) {
		return fmt.Errorf("%w: compound entry %q", ErrCyclicTag, name)
	}
	c.put(name, t)
	return nil
}

// put stores t without validation. The parser only builds fresh trees.
func (c *Compound) put(name string, t Tag) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.Remove(name)
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: name, Tag: t})
}

// Remove deletes the entry stored under name and reports whether it existed.
func (c *Compound) Remove(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries = slices.Delete(c.entries, i, i+1)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}
	return true
}

// Names returns the entry names in iteration order.
func (c *Compound) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries in iteration order.
func (c *Compound) Entries() []Entry {
	return slices.Clone(c.entries)
}

// All iterates over name/tag pairs in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, e := range c.entries {
			if !yield(e.Name, e.Tag) {
				return
			}
		}
	}
}

// String returns the SNBT-style text form of the compound.
func (c *Compound) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range c.entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(snbtKey(e.Name))
		sb.WriteByte(':')
		sb.WriteString(e.Tag.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (c *Compound) equal(o *Compound) bool {
	if len(c.entries) != len(o.entries) {
		return false
	}
	for i := range c.entries {
		if c.entries[i].Name != o.entries[i].Name || !Equal(c.entries[i].Tag, o.entries[i].Tag) {
			return false
		}
	}
	return true
}

// snbtKey leaves simple names bare and quotes everything else.
func snbtKey(name string) string {
	if name == "" {
		return `""`
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.', r == '+':
		default:
			return strconv.Quote(name)
		}
	}
	return name
}
