package export

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/nbt/internal/nbt"
)

// YAML renders t as a YAML document.
func YAML(t nbt.Tag) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{YAMLNode(t)}}
	return yaml.Marshal(doc)
}

// YAMLNode builds the YAML node tree for t. Compound entries keep their
// order; numeric arrays are emitted in flow style.
func YAMLNode(t nbt.Tag) *yaml.Node {
	switch x := t.(type) {
	case nbt.Byte, nbt.Short, nbt.Int, nbt.Long:
		return scalar("!!int", strconv.FormatInt(integerValue(x), 10))
	case nbt.Float:
		return scalar("!!float", formatFloat(float64(x), 32))
	case nbt.Double:
		return scalar("!!float", formatFloat(float64(x), 64))
	case nbt.String:
		return scalar("!!str", string(x))
	case nbt.ByteArray:
		seq := flowSeq()
		for _, b := range x {
			seq.Content = append(seq.Content, scalar("!!int", strconv.Itoa(int(int8(b)))))
		}
		return seq
	case nbt.IntArray:
		seq := flowSeq()
		for _, v := range x {
			seq.Content = append(seq.Content, scalar("!!int", strconv.FormatInt(int64(v), 10)))
		}
		return seq
	case nbt.LongArray:
		seq := flowSeq()
		for _, v := range x {
			seq.Content = append(seq.Content, scalar("!!int", strconv.FormatInt(v, 10)))
		}
		return seq
	case *nbt.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x.All() {
			seq.Content = append(seq.Content, YAMLNode(item))
		}
		if x.Len() == 0 {
			seq.Style = yaml.FlowStyle
		}
		return seq
	case *nbt.Compound:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for name, item := range x.All() {
			m.Content = append(m.Content, scalar("!!str", name), YAMLNode(item))
		}
		if x.Len() == 0 {
			m.Style = yaml.FlowStyle
		}
		return m
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func flowSeq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
}

func integerValue(t nbt.Tag) int64 {
	switch x := t.(type) {
	case nbt.Byte:
		return int64(x)
	case nbt.Short:
		return int64(x)
	case nbt.Int:
		return int64(x)
	case nbt.Long:
		return int64(x)
	}
	return 0
}

// formatFloat spells non-finite values the way YAML expects.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
