package export

import (
	"bytes"
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/nbt/internal/nbt"
)

func playerTag(t *testing.T) *nbt.Compound {
	t.Helper()
	c := nbt.NewCompound()
	require.NoError(t, c.Set("Name", nbt.String("Steve")))
	require.NoError(t, c.Set("Health", nbt.Int(20)))
	require.NoError(t, c.Set("Pos", nbt.IntArray{1, 2, 3}))
	require.NoError(t, c.Set("Data", nbt.ByteArray{0xFF, 2}))
	require.NoError(t, c.Set("Scale", nbt.Double(1.5)))
	return c
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"snbt", FormatSNBT, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"cbor", FormatCBOR, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSON_OrderAndValues(t *testing.T) {
	c := playerTag(t)
	require.NoError(t, c.Set("Bad", nbt.Float(float32(math.NaN()))))

	data, err := JSON(c)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Name":"Steve","Health":20,"Pos":[1,2,3],"Data":[-1,2],"Scale":1.5,"Bad":"NaN"}`,
		string(data))
}

func TestJSON_EmptyContainers(t *testing.T) {
	c := nbt.NewCompound()
	require.NoError(t, c.Set("List", nbt.NewList(nbt.KindInt)))
	require.NoError(t, c.Set("Ints", nbt.IntArray{}))
	require.NoError(t, c.Set("Nested", nbt.NewCompound()))

	data, err := JSON(c)
	require.NoError(t, err)
	assert.Equal(t, `{"List":[],"Ints":[],"Nested":{}}`, string(data))
}

func TestYAML_Flat(t *testing.T) {
	c := nbt.NewCompound()
	require.NoError(t, c.Set("Name", nbt.String("Steve")))
	require.NoError(t, c.Set("Health", nbt.Int(20)))

	data, err := YAML(c)
	require.NoError(t, err)
	assert.Equal(t, "Name: Steve\nHealth: 20\n", string(data))
}

func TestYAML_KeepsOrder(t *testing.T) {
	data, err := YAML(playerTag(t))
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Content, 1)

	root := doc.Content[0]
	require.Equal(t, yaml.MappingNode, root.Kind)
	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	assert.Equal(t, []string{"Name", "Health", "Pos", "Data", "Scale"}, keys)

	var decoded struct {
		Health int     `yaml:"Health"`
		Pos    []int   `yaml:"Pos"`
		Data   []int   `yaml:"Data"`
		Scale  float64 `yaml:"Scale"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 20, decoded.Health)
	assert.Equal(t, []int{1, 2, 3}, decoded.Pos)
	assert.Equal(t, []int{-1, 2}, decoded.Data)
	assert.InDelta(t, 1.5, decoded.Scale, 0)
}

func TestYAMLNode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		tag   nbt.Tag
		want  string
		yaTag string
	}{
		{"byte", nbt.Byte(-3), "-3", "!!int"},
		{"long", nbt.Long(math.MaxInt64), "9223372036854775807", "!!int"},
		{"float", nbt.Float(0.5), "0.5", "!!float"},
		{"nan", nbt.Double(math.NaN()), ".nan", "!!float"},
		{"inf", nbt.Double(math.Inf(-1)), "-.inf", "!!float"},
		{"string", nbt.String("20"), "20", "!!str"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := YAMLNode(tt.tag)
			assert.Equal(t, yaml.ScalarNode, n.Kind)
			assert.Equal(t, tt.want, n.Value)
			assert.Equal(t, tt.yaTag, n.Tag)
		})
	}
}

func TestCBOR_Deterministic(t *testing.T) {
	a, err := CBOR(playerTag(t))
	require.NoError(t, err)
	b, err := CBOR(playerTag(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var decoded struct {
		Name   string
		Health int
		Pos    []int
		Data   []byte
		Scale  float64
	}
	require.NoError(t, cbor.Unmarshal(a, &decoded))
	assert.Equal(t, "Steve", decoded.Name)
	assert.Equal(t, 20, decoded.Health)
	assert.Equal(t, []int{1, 2, 3}, decoded.Pos)
	assert.Equal(t, []byte{0xFF, 2}, decoded.Data)
	assert.InDelta(t, 1.5, decoded.Scale, 0)
}

func TestEncode(t *testing.T) {
	c := playerTag(t)

	t.Run("snbt", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, c, FormatSNBT))
		assert.Equal(t, c.String()+"\n", buf.String())
	})

	t.Run("json has trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, c, FormatJSON))
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
	})

	t.Run("cbor matches CBOR", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, c, FormatCBOR))
		want, err := CBOR(c)
		require.NoError(t, err)
		assert.Equal(t, want, buf.Bytes())
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Encode(&buf, c, Format("xml")))
		assert.Zero(t, buf.Len())
	})
}
