package nbtfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/born-ml/nbt/internal/nbt"
	"github.com/born-ml/nbt/internal/parallel"
)

// Options controls how a file is read or written.
type Options struct {
	// Compression to apply. CompressionAuto detects on read and writes gzip.
	Compression Compression

	// Unnamed reads and writes the root without a name field.
	Unnamed bool
}

// Document is a parsed NBT file.
type Document struct {
	Root        nbt.NamedTag
	Compression Compression // Compression found on read
}

// Read decodes one NBT document from r, stripping transport compression.
//
// An uncompressed stream is read up to the end of the root tag only, so r
// may carry further documents. A compressed stream is read to its end so
// its checksum is verified; leftover decompressed bytes fail with
// nbt.ErrTrailingData.
func Read(r io.Reader, opts Options) (*Document, error) {
	return read(r, opts, false)
}

// ReadFile parses the NBT file at path. The file must hold exactly one
// document; trailing bytes fail with nbt.ErrTrailingData.
//
//nolint:gosec // G304: path comes from trusted caller, not user input.
func ReadFile(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error on read-only file.
	}()

	doc, err := read(f, opts, true)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// read decodes one document. whole requires r to end with it.
func read(r io.Reader, opts Options, whole bool) (*Document, error) {
	zr, c, err := NewReader(r, opts.Compression)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = zr.Close() // Decompressor close only releases resources.
	}()

	root, err := nbt.Parse(zr, !opts.Unnamed)
	if err != nil {
		return nil, fmt.Errorf("parse %s stream: %w", c, err)
	}

	if c != CompressionNone || whole {
		n, err := io.Copy(io.Discard, zr)
		if err != nil {
			return nil, fmt.Errorf("read %s trailer: %w", c, err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: %d bytes after root in %s stream", nbt.ErrTrailingData, n, c)
		}
	}

	return &Document{Root: root, Compression: c}, nil
}

// ReadFiles parses every path concurrently and returns the documents in
// path order. The first failure stops the remaining reads.
func ReadFiles(ctx context.Context, paths []string, opts Options, cfg parallel.Config) ([]*Document, error) {
	return parallel.Map(ctx, len(paths), cfg, func(_ context.Context, i int) (*Document, error) {
		return ReadFile(paths[i], opts)
	})
}

// Write encodes root to w with the requested compression.
func Write(w io.Writer, root nbt.NamedTag, opts Options) error {
	zw, err := NewWriter(w, opts.Compression)
	if err != nil {
		return err
	}
	if err := nbt.Write(zw, root, !opts.Unnamed); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", opts.Compression, err)
	}
	return nil
}

// WriteFile writes root to path. The data goes to a temporary file in the
// same directory first and is renamed into place once complete, so a
// failed write never leaves a truncated document behind.
func WriteFile(path string, root nbt.NamedTag, opts Options) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if err := Write(tmp, root, opts); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
