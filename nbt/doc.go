// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nbt reads, writes and maps Named Binary Tag data.
//
// NBT is a big-endian binary format of typed, optionally named values.
// This package provides:
//   - The tag tree: scalar tags, homogeneous lists, ordered compounds
//   - A streaming codec: Parse/Write for named and unnamed roots
//   - Compressed files: gzip, zlib, zstd and LZ4 with auto-detection
//   - A converter registry mapping Go values to tag trees and back
//
// # Reading and Writing
//
//	root, err := nbt.ParseBytes(data, true)
//	level, err := nbt.AsCompound(root.Tag)
//	name, _ := level.Get("LevelName")
//
//	out, err := nbt.Marshal(nbt.NamedTag{Name: "", Tag: level}, true)
//
// # Mapping Go Values
//
//	type Player struct {
//	    Name   string `nbt:"Name"`
//	    Health int32  `nbt:"Health"`
//	}
//
//	reg := nbt.NewRegistry(nbt.Config{})
//	tag, err := nbt.ToTag(reg, Player{Name: "Steve", Health: 20})
//	p, err := nbt.ToNative[Player](reg, tag)
//
// Resolution for each value goes: property override declared on the
// enclosing struct field, then a converter registered for the Go type,
// then the built-in rules. Anything else fails with ErrNoConverterFound.
package nbt
