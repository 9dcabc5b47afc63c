// Package brarchive implements the BRArchive container format: a fixed-layout
// binary archive packing a named collection of byte blobs into one contiguous
// buffer.
//
// An archive has three regions, all integers little-endian:
//   - Header: 8-byte magic, 4-byte entry count, 4-byte version (16 bytes)
//   - Descriptor table: one fixed 256-byte descriptor per entry
//   - Content region: raw entry bytes, concatenated in descriptor order
//
// [Encode] sorts entries by name, so encoding an equivalent mapping always
// produces byte-identical output. [Decode] validates the header and every
// descriptor before returning data; any structural violation aborts the call
// with one of the package sentinel errors.
//
// Both directions are pure, synchronous transformations over in-memory
// buffers and are safe for concurrent use. The format stores content
// uncompressed and unencrypted; callers needing either should apply it to
// entry content before encoding.
//
// A decoded [Archive] implements fs.FS and related interfaces, treating
// entry names as slash-separated paths with synthesized directories.
//
// # Quick Start
//
// Encode a set of entries and decode them back:
//
//	data, err := brarchive.Encode(map[string][]byte{
//	    "a.txt": []byte("hi"),
//	    "b.txt": []byte("bye"),
//	})
//	if err != nil {
//	    return err
//	}
//	archive, err := brarchive.Decode(data)
//	if err != nil {
//	    return err
//	}
//	content, _ := archive.Content("a.txt")
//
// Extract a decoded archive to a directory:
//
//	stats, err := archive.CopyDir("./out", "", brarchive.CopyWithOverwrite(true))
package brarchive
