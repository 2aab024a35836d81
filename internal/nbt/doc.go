// Package nbt implements the tag model and binary codec for the NBT format.
//
// NBT is a self-describing, tree-structured binary encoding. Every node is a
// Tag of one of thirteen kinds; containers (List and Compound) own their
// children, so a tree has no sharing and no back-references.
//
//	Node Structure:
//	  [1 byte: kind id]
//	  [2 bytes: name length (uint16 BE)] [name: UTF-8]   (named context only)
//	  [payload: kind-specific]
//
// All multi-byte integers are big-endian. Names are present on Compound
// entries and on the optional named root; List elements never carry names.
//
// Example usage:
//
//	root, err := nbt.Parse(r, true)
//	if err != nil {
//	    return err
//	}
//	level, err := nbt.AsCompound(root.Tag)
//	if err != nil {
//	    return err
//	}
//	spawn, _ := level.Get("SpawnX")
package nbt
