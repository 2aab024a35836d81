package convert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/born-ml/nbt/internal/nbt"
)

// structPlan is the resolved property table of one struct type.
type structPlan struct {
	props []property
}

// property maps one struct field to one compound entry.
type property struct {
	index     int
	goName    string
	key       string
	omitEmpty bool
	converter Converter // property-level override, nil when none
}

// parseTag splits an `nbt:"name,opt"` struct tag.
func parseTag(f reflect.StructField) (key string, omitEmpty, skip bool) {
	tag, ok := f.Tag.Lookup("nbt")
	if !ok {
		return f.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// lookupField finds an exported field by Go name or NBT key.
func lookupField(typ reflect.Type, name string) (string, bool) {
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		key, _, skip := parseTag(f)
		if skip {
			continue
		}
		if f.Name == name || key == name {
			return f.Name, true
		}
	}
	return "", false
}

// checkKeys fails with ErrDuplicateKey when two mapped fields of typ
// share one compound key.
func checkKeys(typ reflect.Type) error {
	seen := make(map[string]string, typ.NumField())
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		key, _, skip := parseTag(f)
		if skip {
			continue
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s fields %s and %s both map to %q", ErrDuplicateKey, typ, prev, f.Name, key)
		}
		seen[key] = f.Name
	}
	return nil
}

// plan returns the cached property table for typ, building it on first use.
func (r *Registry) plan(typ reflect.Type) (*structPlan, error) {
	r.mu.RLock()
	p, ok := r.plans[typ]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.plans[typ]; ok {
		return p, nil
	}

	if err := checkKeys(typ); err != nil {
		return nil, err
	}

	overrides := r.overrides[typ]
	p = &structPlan{props: make([]property, 0, typ.NumField())}
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		key, omitEmpty, skip := parseTag(f)
		if skip {
			continue
		}
		p.props = append(p.props, property{
			index:     i,
			goName:    f.Name,
			key:       key,
			omitEmpty: omitEmpty,
			converter: overrides[f.Name],
		})
	}
	r.plans[typ] = p
	return p, nil
}

func (r *Registry) encodeStruct(v reflect.Value, st *encodeState) (nbt.Tag, error) {
	p, err := r.plan(v.Type())
	if err != nil {
		return nil, err
	}
	if err := st.enter(v.Type()); err != nil {
		return nil, err
	}
	defer st.leave()

	c := nbt.NewCompound()
	for _, prop := range p.props {
		fv := v.Field(prop.index)
		if isNilValue(fv) || (prop.omitEmpty && fv.IsZero()) {
			continue
		}

		var t nbt.Tag
		if prop.converter != nil {
			t, err = prop.converter.ToTag(fv)
		} else {
			t, err = r.encode(fv, st)
		}
		if err != nil {
			return nil, atPath(err, prop.goName)
		}
		if err := c.Set(prop.key, t); err != nil {
			return nil, fmt.Errorf("%s: %w", prop.goName, err)
		}
	}
	return c, nil
}

func (r *Registry) decodeStruct(t nbt.Tag, v reflect.Value) error {
	c, ok := t.(*nbt.Compound)
	if !ok {
		return mismatch(t, v.Type())
	}
	p, err := r.plan(v.Type())
	if err != nil {
		return err
	}

	for _, prop := range p.props {
		item, ok := c.Get(prop.key)
		if !ok {
			continue
		}
		fv := v.Field(prop.index)
		if prop.converter != nil {
			if err = prop.converter.FromTag(item, fv); err != nil {
				err = conversionFailure(err, item, fv.Type())
			}
		} else {
			err = r.decode(item, fv)
		}
		if err != nil {
			return atPath(err, prop.goName)
		}
	}
	return nil
}
