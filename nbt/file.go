// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nbt

import (
	"io"

	"github.com/born-ml/nbt/internal/nbtfile"
)

// Compression selects the stream compression of an NBT file.
type Compression = nbtfile.Compression

// Compression constants. CompressionAuto detects on read and writes gzip.
const (
	CompressionAuto Compression = nbtfile.CompressionAuto
	CompressionNone Compression = nbtfile.CompressionNone
	CompressionGzip Compression = nbtfile.CompressionGzip
	CompressionZlib Compression = nbtfile.CompressionZlib
	CompressionZstd Compression = nbtfile.CompressionZstd
	CompressionLZ4  Compression = nbtfile.CompressionLZ4
)

// FileOptions configures file reads and writes.
type FileOptions = nbtfile.Options

// Document is a decoded file: its root tag and detected compression.
type Document = nbtfile.Document

// ParseCompression parses a compression name such as "gzip".
func ParseCompression(name string) (Compression, error) {
	return nbtfile.ParseCompression(name)
}

// ReadFile reads and decompresses one NBT document from path.
func ReadFile(path string, opts FileOptions) (*Document, error) {
	return nbtfile.ReadFile(path, opts)
}

// WriteFile atomically writes root to path.
func WriteFile(path string, root NamedTag, opts FileOptions) error {
	return nbtfile.WriteFile(path, root, opts)
}

// ReadCompressed reads one NBT document from a possibly compressed stream.
func ReadCompressed(r io.Reader, opts FileOptions) (*Document, error) {
	return nbtfile.Read(r, opts)
}

// WriteCompressed writes root to w using opts.Compression.
func WriteCompressed(w io.Writer, root NamedTag, opts FileOptions) error {
	return nbtfile.Write(w, root, opts)
}
