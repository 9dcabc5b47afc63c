// Package testutil builds raw BRArchive buffers for tests, including
// malformed ones the encoder refuses to produce.
package testutil

import (
	"encoding/binary"

	"github.com/brpack/brarchive/internal/layout"
)

// RawEntry describes one descriptor for a hand-built archive. NameLen is the
// wire value and may disagree with len(Name) or exceed the format cap.
type RawEntry struct {
	NameLen byte
	Name    []byte
	Offset  uint32
	Length  uint32
}

// Header returns a 16-byte header with the format magic and the given
// entry count and version.
func Header(entryCount, version uint32) []byte {
	b := make([]byte, layout.HeaderSize)
	binary.LittleEndian.PutUint64(b[:8], layout.Magic)
	binary.LittleEndian.PutUint32(b[8:12], entryCount)
	binary.LittleEndian.PutUint32(b[12:16], version)
	return b
}

// Build assembles header + descriptors + content into one buffer. No
// validation is applied, so descriptors may be malformed and entryCount may
// disagree with len(entries).
func Build(entryCount, version uint32, entries []RawEntry, content []byte) []byte {
	buf := make([]byte, 0, layout.HeaderSize+len(entries)*layout.DescriptorSize+len(content))
	buf = append(buf, Header(entryCount, version)...)
	for _, e := range entries {
		buf = append(buf, Descriptor(e)...)
	}
	return append(buf, content...)
}

// Descriptor returns the 256-byte wire form of e.
func Descriptor(e RawEntry) []byte {
	b := make([]byte, layout.DescriptorSize)
	b[0] = e.NameLen
	copy(b[1:1+layout.EntryNameLenMax], e.Name)
	binary.LittleEndian.PutUint32(b[248:252], e.Offset)
	binary.LittleEndian.PutUint32(b[252:256], e.Length)
	return b
}
