package nbt

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *Compound {
	t.Helper()

	inventory, err := ListOf()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		item := NewCompound()
		require.NoError(t, item.Set("id", String("minecraft:stone")))
		require.NoError(t, item.Set("Count", Byte(int8(i+1))))
		require.NoError(t, inventory.Append(item))
	}

	matrix, err := ListOf(IntArray{1, 2}, IntArray{}, IntArray{math.MinInt32})
	require.NoError(t, err)

	root := NewCompound()
	require.NoError(t, root.Set("name", String("Steve")))
	require.NoError(t, root.Set("health", Int(20)))
	require.NoError(t, root.Set("xp", Float(float32(math.Inf(1)))))
	require.NoError(t, root.Set("seed", Long(math.MinInt64)))
	require.NoError(t, root.Set("motion", Double(math.Copysign(0, -1))))
	require.NoError(t, root.Set("tick", Short(math.MaxInt16)))
	require.NoError(t, root.Set("blocks", ByteArray{0, 0x7F, 0x80, 0xFF}))
	require.NoError(t, root.Set("states", LongArray{-1, 0, 1}))
	require.NoError(t, root.Set("Inventory", inventory))
	require.NoError(t, root.Set("matrix", matrix))
	require.NoError(t, root.Set("noLists", NewList(KindList)))
	require.NoError(t, root.Set("", String("empty name")))
	return root
}

func TestWrite_RoundTrip(t *testing.T) {
	tree := sampleTree(t)

	for _, named := range []bool{true, false} {
		data, err := Marshal(NamedTag{Name: "Player", Tag: tree}, named)
		require.NoError(t, err)

		root, err := ParseBytes(data, named)
		require.NoError(t, err)
		assert.True(t, Equal(tree, root.Tag), "decoded tree differs: %s", root.Tag)
		if named {
			assert.Equal(t, "Player", root.Name)
		} else {
			assert.Equal(t, "", root.Name)
		}
	}
}

func TestWrite_RoundTripScalars(t *testing.T) {
	tags := []Tag{
		Byte(math.MinInt8), Short(math.MinInt16), Int(math.MaxInt32), Long(math.MaxInt64),
		Float(float32(math.NaN())), Double(math.SmallestNonzeroFloat64),
		String(""), String("日本語"), ByteArray{}, IntArray{}, LongArray{}, NewCompound(),
	}
	for _, tag := range tags {
		data, err := Marshal(NamedTag{Tag: tag}, true)
		require.NoError(t, err)
		root, err := ParseBytes(data, true)
		require.NoError(t, err)
		assert.True(t, Equal(tag, root.Tag), "%s", tag)
	}
}

func TestWrite_CanonicalForm(t *testing.T) {
	inputs := map[string][]byte{
		"all kinds":  createTestNBT(),
		"byte root":  {0x01, 0x00, 0x00, 0x7F},
		"end root":   {0x00},
		"empty list": (&builder{}).kind(KindList).str("x").kind(KindLong).i32(0).Bytes(),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			root, err := ParseBytes(data, true)
			require.NoError(t, err)
			out, err := Marshal(root, true)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestWrite_EmptyListKeepsDeclaredKind(t *testing.T) {
	out, err := Marshal(NamedTag{Tag: NewList(KindCompound)}, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(KindList), byte(KindCompound), 0, 0, 0, 0}, out)
}

func TestWrite_ByteRootLayout(t *testing.T) {
	out, err := Marshal(NamedTag{Name: "", Tag: Byte(127)}, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x7F}, out)

	out, err = Marshal(NamedTag{Name: "ignored", Tag: Byte(127)}, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x7F}, out)
}

func TestWrite_Errors(t *testing.T) {
	long := strings.Repeat("x", math.MaxUint16+1)

	tooLongName := NewCompound()
	require.NoError(t, tooLongName.Set(long, Byte(1)))

	badString := NewCompound()
	require.NoError(t, badString.Set("s", String([]byte{0xFF, 0xFE})))

	tests := []struct {
		name    string
		root    NamedTag
		wantErr error
	}{
		{name: "nil root", root: NamedTag{}, wantErr: ErrNilTag},
		{name: "string too long", root: NamedTag{Tag: String(long)}, wantErr: ErrStringTooLong},
		{name: "name too long", root: NamedTag{Tag: tooLongName}, wantErr: ErrStringTooLong},
		{name: "invalid utf8", root: NamedTag{Tag: badString}, wantErr: ErrInvalidUTF8},
		{name: "invalid root name", root: NamedTag{Name: string([]byte{0xC0}), Tag: Int(1)}, wantErr: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Write(&bytes.Buffer{}, tt.root, true)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWrite_MaxDepth(t *testing.T) {
	var tag Tag = Int(1)
	for i := 0; i < MaxDepth+1; i++ {
		l, err := ListOf(tag)
		require.NoError(t, err)
		tag = l
	}
	err := Write(&bytes.Buffer{}, NamedTag{Tag: tag}, true)
	assert.ErrorIs(t, err, ErrMaxDepth)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	err := Write(failingWriter{}, NamedTag{Tag: sampleTree(t)}, true)
	assert.ErrorContains(t, err, "disk full")
}
