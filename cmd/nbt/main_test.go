package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/nbt/internal/nbt"
	"github.com/born-ml/nbt/internal/nbtfile"
)

func writeLevel(t *testing.T, c nbtfile.Compression) string {
	t.Helper()
	root := nbt.NewCompound()
	require.NoError(t, root.Set("LevelName", nbt.String("world")))
	require.NoError(t, root.Set("Version", nbt.Int(19133)))

	path := filepath.Join(t.TempDir(), "level.dat")
	require.NoError(t, nbtfile.WriteFile(path, nbt.NamedTag{Name: "Data", Tag: root}, nbtfile.Options{Compression: c}))
	return path
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"version"}, &stdout, &stderr))
	assert.Equal(t, "nbt "+version+"\n", stdout.String())
}

func TestRun_Dump(t *testing.T) {
	path := writeLevel(t, nbtfile.CompressionGzip)

	tests := []struct {
		format string
		want   string
	}{
		{"json", `{"LevelName":"world","Version":19133}` + "\n"},
		{"yaml", "LevelName: world\nVersion: 19133\n"},
		{"snbt", `{LevelName:"world",Version:19133}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.NoError(t, run(context.Background(), []string{"dump", "--format", tt.format, path}, &stdout, &stderr))
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRun_DumpVerboseLogs(t *testing.T) {
	path := writeLevel(t, nbtfile.CompressionZstd)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"dump", "-v", "-f", "json", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "compression=zstd")
	assert.Contains(t, stderr.String(), "root_name=Data")
}

func TestRun_Recompress(t *testing.T) {
	in := writeLevel(t, nbtfile.CompressionGzip)
	out := filepath.Join(t.TempDir(), "level.lz4")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"recompress", "--compression", "lz4", in, out}, &stdout, &stderr))

	src, err := nbtfile.ReadFile(in, nbtfile.Options{})
	require.NoError(t, err)
	dst, err := nbtfile.ReadFile(out, nbtfile.Options{})
	require.NoError(t, err)

	assert.Equal(t, nbtfile.CompressionLZ4, dst.Compression)
	assert.Equal(t, src.Root.Name, dst.Root.Name)
	assert.True(t, nbt.Equal(src.Root.Tag, dst.Root.Tag))
}

func TestRun_Errors(t *testing.T) {
	path := writeLevel(t, nbtfile.CompressionNone)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"explode"}},
		{"dump without file", []string{"dump"}},
		{"dump bad format", []string{"dump", "--format", "xml", path}},
		{"dump bad compression", []string{"dump", "--compression", "brotli", path}},
		{"dump missing file", []string{"dump", filepath.Join(t.TempDir(), "absent.dat")}},
		{"dump unknown flag", []string{"dump", "--nope", path}},
		{"recompress one arg", []string{"recompress", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Error(t, run(context.Background(), tt.args, &stdout, &stderr))
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"dump", "--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--format")
	assert.Empty(t, stdout.String())
}

func TestRun_DumpMany(t *testing.T) {
	a := writeLevel(t, nbtfile.CompressionGzip)
	b := writeLevel(t, nbtfile.CompressionLZ4)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"dump", "-j", "2", "-f", "json", a, b}, &stdout, &stderr))

	level := `{"LevelName":"world","Version":19133}` + "\n"
	assert.Equal(t, "==> "+a+" <==\n"+level+"==> "+b+" <==\n"+level, stdout.String())
}
