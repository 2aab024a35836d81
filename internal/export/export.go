// Package export renders NBT tag trees in text and binary interchange
// formats for inspection: SNBT-style text, YAML, JSON and CBOR.
//
// YAML and JSON keep compound entries in their stored order. CBOR uses
// Core Deterministic Encoding, so map keys come out sorted.
package export

import (
	"fmt"
	"io"

	"github.com/born-ml/nbt/internal/nbt"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatSNBT Format = "snbt"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatSNBT, FormatYAML, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %q (want snbt, yaml, json or cbor)", name)
	}
}

// Encode writes t to w in format f.
func Encode(w io.Writer, t nbt.Tag, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatSNBT:
		data = []byte(t.String() + "\n")
	case FormatYAML:
		data, err = YAML(t)
	case FormatJSON:
		data, err = JSON(t)
		data = append(data, '\n')
	case FormatCBOR:
		data, err = CBOR(t)
	default:
		return fmt.Errorf("unknown format: %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}
