package export

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/born-ml/nbt/internal/nbt"
)

// JSON renders t as JSON. Compound entries keep their order. Byte arrays
// are emitted as number arrays, and non-finite floats as the strings
// "NaN", "Infinity" and "-Infinity".
func JSON(t nbt.Tag) ([]byte, error) {
	return json.Marshal(jsonValue(t))
}

type member struct {
	name  string
	value any
}

// object is a JSON object that preserves member order.
type object []member

// MarshalJSON implements json.Marshaler.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(t nbt.Tag) any {
	switch x := t.(type) {
	case nbt.Byte, nbt.Short, nbt.Int, nbt.Long:
		return integerValue(x)
	case nbt.Float:
		return jsonFloat(float64(x))
	case nbt.Double:
		return jsonFloat(float64(x))
	case nbt.String:
		return string(x)
	case nbt.ByteArray:
		out := make([]int8, len(x))
		for i, b := range x {
			out[i] = int8(b)
		}
		return out
	case nbt.IntArray:
		return append([]int32{}, x...)
	case nbt.LongArray:
		return append([]int64{}, x...)
	case *nbt.List:
		out := make([]any, 0, x.Len())
		for _, item := range x.All() {
			out = append(out, jsonValue(item))
		}
		return out
	case *nbt.Compound:
		out := make(object, 0, x.Len())
		for name, item := range x.All() {
			out = append(out, member{name: name, value: jsonValue(item)})
		}
		return out
	}
	return nil
}

func jsonFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}
