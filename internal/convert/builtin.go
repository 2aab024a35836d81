package convert

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/born-ml/nbt/internal/nbt"
)

var tagType = reflect.TypeFor[nbt.Tag]()

// encodeBuiltin applies the built-in rules to v.
//
//nolint:gocyclo,cyclop // One case per reflect kind.
func (r *Registry) encodeBuiltin(v reflect.Value, st *encodeState) (nbt.Tag, error) {
	if v.Kind() != reflect.Interface && v.Type().Implements(tagType) {
		if isNilValue(v) {
			return nil, fmt.Errorf("%w: nil %s", ErrNoConverterFound, v.Type())
		}
		return v.Interface().(nbt.Tag), nil
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrNoConverterFound, v.Type())
		}
		return r.encode(v.Elem(), st)

	case reflect.Pointer:
		if v.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrNoConverterFound, v.Type())
		}
		done, err := st.follow(v)
		if err != nil {
			return nil, err
		}
		defer done()
		return r.encode(v.Elem(), st)

	case reflect.Bool:
		if v.Bool() {
			return nbt.Byte(1), nil
		}
		return nbt.Byte(0), nil

	case reflect.Int8:
		return nbt.Byte(v.Int()), nil
	case reflect.Int16:
		return nbt.Short(v.Int()), nil
	case reflect.Int32:
		return nbt.Int(v.Int()), nil
	case reflect.Int64, reflect.Int:
		return nbt.Long(v.Int()), nil
	case reflect.Uint8:
		return nbt.Byte(int8(v.Uint())), nil //nolint:gosec // G115: bit reinterpretation.
	case reflect.Uint16:
		return nbt.Short(int16(v.Uint())), nil //nolint:gosec // G115: bit reinterpretation.
	case reflect.Uint32:
		return nbt.Int(int32(v.Uint())), nil //nolint:gosec // G115: bit reinterpretation.
	case reflect.Uint64, reflect.Uint:
		return nbt.Long(int64(v.Uint())), nil //nolint:gosec // G115: bit reinterpretation.
	case reflect.Float32:
		return nbt.Float(v.Float()), nil
	case reflect.Float64:
		return nbt.Double(v.Float()), nil
	case reflect.String:
		return nbt.String(v.String()), nil

	case reflect.Slice, reflect.Array:
		return r.encodeSequence(v, st)

	case reflect.Map:
		return r.encodeMap(v, st)

	case reflect.Struct:
		return r.encodeStruct(v, st)

	default:
		return nil, fmt.Errorf("%w: %s", ErrNoConverterFound, v.Type())
	}
}

func (r *Registry) encodeSequence(v reflect.Value, st *encodeState) (nbt.Tag, error) {
	n := v.Len()
	elem := v.Type().Elem()
	if _, ok := r.lookup(elem); ok {
		return r.encodeList(v, st)
	}
	switch elem.Kind() {
	case reflect.Uint8, reflect.Int8:
		out := make(nbt.ByteArray, n)
		for i := range n {
			if v.Index(i).CanInt() {
				out[i] = byte(v.Index(i).Int())
			} else {
				out[i] = byte(v.Index(i).Uint())
			}
		}
		return out, nil
	case reflect.Int32:
		out := make(nbt.IntArray, n)
		for i := range n {
			out[i] = int32(v.Index(i).Int()) //nolint:gosec // G115: element type is int32.
		}
		return out, nil
	case reflect.Int64:
		out := make(nbt.LongArray, n)
		for i := range n {
			out[i] = v.Index(i).Int()
		}
		return out, nil
	}

	return r.encodeList(v, st)
}

func (r *Registry) encodeList(v reflect.Value, st *encodeState) (nbt.Tag, error) {
	if err := st.enter(v.Type()); err != nil {
		return nil, err
	}
	defer st.leave()

	list := nbt.NewList(r.kindFor(v.Type().Elem()))
	for i := range v.Len() {
		t, err := r.encode(v.Index(i), st)
		if err != nil {
			return nil, atPath(err, "["+strconv.Itoa(i)+"]")
		}
		if err := list.Append(t); err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return list, nil
}

func (r *Registry) encodeMap(v reflect.Value, st *encodeState) (nbt.Tag, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: map key type %s", ErrNoConverterFound, v.Type().Key())
	}
	if err := st.enter(v.Type()); err != nil {
		return nil, err
	}
	defer st.leave()

	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})

	c := nbt.NewCompound()
	for _, k := range keys {
		ev := v.MapIndex(k)
		if isNilValue(ev) {
			continue
		}
		t, err := r.encode(ev, st)
		if err != nil {
			return nil, atPath(err, k.String())
		}
		if err := c.Set(k.String(), t); err != nil {
			return nil, fmt.Errorf("%s: %w", k.String(), err)
		}
	}
	return c, nil
}

// decodeBuiltin applies the built-in rules to fill v from t.
//
//nolint:gocyclo,cyclop // One case per reflect kind.
func (r *Registry) decodeBuiltin(t nbt.Tag, v reflect.Value) error {
	typ := v.Type()
	if reflect.TypeOf(t) == typ {
		v.Set(reflect.ValueOf(t))
		return nil
	}

	switch typ.Kind() {
	case reflect.Interface:
		if typ.NumMethod() == 0 {
			if natural := Natural(t); natural != nil {
				v.Set(reflect.ValueOf(natural))
			} else {
				v.Set(reflect.Zero(typ))
			}
			return nil
		}
		if reflect.TypeOf(t).AssignableTo(typ) {
			v.Set(reflect.ValueOf(t))
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNoConverterFound, typ)

	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(typ.Elem()))
		}
		return r.decode(t, v.Elem())

	case reflect.Bool:
		b, ok := t.(nbt.Byte)
		if !ok {
			return mismatch(t, typ)
		}
		v.SetBool(b != 0)
		return nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		n, ok := integer(t, typ)
		if !ok {
			return mismatch(t, typ)
		}
		v.SetInt(n)
		return nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		n, ok := unsigned(t, typ)
		if !ok {
			return mismatch(t, typ)
		}
		v.SetUint(n)
		return nil

	case reflect.Float32:
		f, ok := t.(nbt.Float)
		if !ok {
			return mismatch(t, typ)
		}
		v.SetFloat(float64(f))
		return nil

	case reflect.Float64:
		f, ok := t.(nbt.Double)
		if !ok {
			return mismatch(t, typ)
		}
		v.SetFloat(float64(f))
		return nil

	case reflect.String:
		s, ok := t.(nbt.String)
		if !ok {
			return mismatch(t, typ)
		}
		v.SetString(string(s))
		return nil

	case reflect.Slice, reflect.Array:
		return r.decodeSequence(t, v)

	case reflect.Map:
		return r.decodeMap(t, v)

	case reflect.Struct:
		return r.decodeStruct(t, v)

	default:
		return fmt.Errorf("%w: %s", ErrNoConverterFound, typ)
	}
}

// integer extracts a signed value from the tag kind matching typ's width.
func integer(t nbt.Tag, typ reflect.Type) (int64, bool) {
	switch typ.Kind() {
	case reflect.Int8:
		b, ok := t.(nbt.Byte)
		return int64(b), ok
	case reflect.Int16:
		s, ok := t.(nbt.Short)
		return int64(s), ok
	case reflect.Int32:
		i, ok := t.(nbt.Int)
		return int64(i), ok
	default:
		l, ok := t.(nbt.Long)
		return int64(l), ok
	}
}

// unsigned extracts a value from the tag kind matching typ's width and
// reinterprets its bits as unsigned.
func unsigned(t nbt.Tag, typ reflect.Type) (uint64, bool) {
	switch typ.Kind() {
	case reflect.Uint8:
		b, ok := t.(nbt.Byte)
		return uint64(uint8(b)), ok
	case reflect.Uint16:
		s, ok := t.(nbt.Short)
		return uint64(uint16(s)), ok
	case reflect.Uint32:
		i, ok := t.(nbt.Int)
		return uint64(uint32(i)), ok
	default:
		l, ok := t.(nbt.Long)
		return uint64(l), ok //nolint:gosec // G115: bit reinterpretation.
	}
}

func (r *Registry) decodeSequence(t nbt.Tag, v reflect.Value) error {
	typ := v.Type()
	elem := typ.Elem()

	var n int
	var at func(i int, ev reflect.Value) error

	switch arr := t.(type) {
	case nbt.ByteArray:
		if elem.Kind() != reflect.Uint8 && elem.Kind() != reflect.Int8 {
			return mismatch(t, typ)
		}
		n = len(arr)
		at = func(i int, ev reflect.Value) error {
			if ev.CanInt() {
				ev.SetInt(int64(int8(arr[i])))
			} else {
				ev.SetUint(uint64(arr[i]))
			}
			return nil
		}
	case nbt.IntArray:
		if elem.Kind() != reflect.Int32 {
			return mismatch(t, typ)
		}
		n = len(arr)
		at = func(i int, ev reflect.Value) error {
			ev.SetInt(int64(arr[i]))
			return nil
		}
	case nbt.LongArray:
		if elem.Kind() != reflect.Int64 {
			return mismatch(t, typ)
		}
		n = len(arr)
		at = func(i int, ev reflect.Value) error {
			ev.SetInt(arr[i])
			return nil
		}
	case *nbt.List:
		n = arr.Len()
		at = func(i int, ev reflect.Value) error {
			item, _ := arr.Get(i)
			if err := r.decode(item, ev); err != nil {
				return atPath(err, "["+strconv.Itoa(i)+"]")
			}
			return nil
		}
	default:
		return mismatch(t, typ)
	}

	if typ.Kind() == reflect.Array {
		if n != typ.Len() {
			return &ConversionError{
				Kind:   t.Kind(),
				Target: typ,
				Err:    fmt.Errorf("length %d does not fit array of %d", n, typ.Len()),
			}
		}
		for i := range n {
			if err := at(i, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	out := reflect.MakeSlice(typ, n, n)
	for i := range n {
		if err := at(i, out.Index(i)); err != nil {
			return err
		}
	}
	v.Set(out)
	return nil
}

func (r *Registry) decodeMap(t nbt.Tag, v reflect.Value) error {
	typ := v.Type()
	if typ.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key type %s", ErrNoConverterFound, typ.Key())
	}
	c, ok := t.(*nbt.Compound)
	if !ok {
		return mismatch(t, typ)
	}

	out := reflect.MakeMapWithSize(typ, c.Len())
	for name, item := range c.All() {
		ev := reflect.New(typ.Elem()).Elem()
		if err := r.decode(item, ev); err != nil {
			return atPath(err, name)
		}
		out.SetMapIndex(reflect.ValueOf(name).Convert(typ.Key()), ev)
	}
	v.Set(out)
	return nil
}

// kindFor predicts the tag kind the built-in rules produce for typ. It is
// only used to declare the element kind of empty lists. Types with a
// registered converter declare End, since their kind is only known once a
// value is converted.
func (r *Registry) kindFor(typ reflect.Type) nbt.Kind {
	if _, ok := r.lookup(typ); ok {
		return nbt.KindEnd
	}
	switch typ.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return nbt.KindByte
	case reflect.Int16, reflect.Uint16:
		return nbt.KindShort
	case reflect.Int32, reflect.Uint32:
		return nbt.KindInt
	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		return nbt.KindLong
	case reflect.Float32:
		return nbt.KindFloat
	case reflect.Float64:
		return nbt.KindDouble
	case reflect.String:
		return nbt.KindString
	case reflect.Map, reflect.Struct:
		return nbt.KindCompound
	case reflect.Pointer:
		return r.kindFor(typ.Elem())
	case reflect.Slice, reflect.Array:
		if _, ok := r.lookup(typ.Elem()); ok {
			return nbt.KindList
		}
		switch typ.Elem().Kind() {
		case reflect.Uint8, reflect.Int8:
			return nbt.KindByteArray
		case reflect.Int32:
			return nbt.KindIntArray
		case reflect.Int64:
			return nbt.KindLongArray
		}
		return nbt.KindList
	}
	return nbt.KindEnd
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Natural returns the plain Go value for t: int8, int16, int32, int64,
// float32, float64, string, []byte, []int32, []int64, []any for lists and
// map[string]any for compounds.
func Natural(t nbt.Tag) any {
	switch x := t.(type) {
	case nbt.Byte:
		return int8(x)
	case nbt.Short:
		return int16(x)
	case nbt.Int:
		return int32(x)
	case nbt.Long:
		return int64(x)
	case nbt.Float:
		return float32(x)
	case nbt.Double:
		return float64(x)
	case nbt.String:
		return string(x)
	case nbt.ByteArray:
		return []byte(x)
	case nbt.IntArray:
		return []int32(x)
	case nbt.LongArray:
		return []int64(x)
	case *nbt.List:
		out := make([]any, 0, x.Len())
		for _, item := range x.All() {
			out = append(out, Natural(item))
		}
		return out
	case *nbt.Compound:
		out := make(map[string]any, x.Len())
		for name, item := range x.All() {
			out[name] = Natural(item)
		}
		return out
	}
	return nil
}
