// Package nbtfile reads and writes NBT documents stored in files.
//
// The NBT codec works on plain byte streams. Files in the wild are usually
// wrapped in a transport compression (gzip for level and player files,
// zlib for region chunks), so this package detects and strips that layer
// before handing the stream to the codec, and applies it again on write.
//
// Supported compressions, detected by their magic bytes:
//
//	gzip  1f 8b
//	zlib  78 xx   (CMF/FLG checksum must hold)
//	zstd  28 b5 2f fd
//	lz4   04 22 4d 18   (frame format)
//
// Anything else is read as uncompressed NBT.
package nbtfile
