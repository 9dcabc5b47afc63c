// Package layout defines the BRArchive wire format: the fixed 16-byte header
// and the fixed 256-byte entry descriptor, all integers little-endian.
//
// An archive is header + descriptor table + content region. The content
// region starts immediately after the last descriptor; descriptor offsets are
// relative to the content region, not the buffer start.
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// Magic identifies a BRArchive buffer. Stored little-endian in the
	// first 8 bytes of the header.
	Magic uint64 = 0x267052A0B125277D

	// Version1 is the only recognized format version.
	Version1 uint32 = 1

	// EntryNameLenMax is the maximum UTF-8 byte length of an entry name.
	EntryNameLenMax = 247

	// HeaderSize is the fixed byte length of the archive header.
	HeaderSize = 16

	// DescriptorSize is the fixed byte length of one entry descriptor.
	DescriptorSize = 256
)

// Descriptor field positions, relative to the descriptor start.
const (
	namePos           = 1
	contentsOffsetPos = namePos + EntryNameLenMax
	contentsLenPos    = contentsOffsetPos + 4
)

// Sentinel errors for wire-level violations. Raise sites wrap these with
// offset and expected/actual context.
var (
	// ErrMagicMismatch is returned when the first 8 header bytes are not
	// the format magic.
	ErrMagicMismatch = errors.New("brarchive: magic mismatch")

	// ErrUnsupportedVersion is returned when the header version is not in
	// the supported set.
	ErrUnsupportedVersion = errors.New("brarchive: unsupported version")

	// ErrNameTooLong is returned when an entry name exceeds EntryNameLenMax
	// bytes, on either decode or encode.
	ErrNameTooLong = errors.New("brarchive: entry name too long")

	// ErrInvalidUTF8 is returned when an entry name is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("brarchive: entry name is not valid UTF-8")

	// ErrTruncated is returned when a descriptor or content slice would
	// read past the end of the supplied buffer.
	ErrTruncated = errors.New("brarchive: truncated buffer")

	// ErrArchiveTooLarge is returned when encoded content would overflow
	// the 32-bit offset and length fields.
	ErrArchiveTooLarge = errors.New("brarchive: archive too large")

	// ErrDuplicateName is returned when strict decoding encounters two
	// descriptors with the same name.
	ErrDuplicateName = errors.New("brarchive: duplicate entry name")
)

// Header holds the decoded archive header. The magic is validated on parse
// and implied on write, so it is not carried here.
type Header struct {
	EntryCount uint32
	Version    uint32
}

// ParseHeader validates and decodes the 16-byte header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(data))
	}
	magic := binary.LittleEndian.Uint64(data[:8])
	if magic != Magic {
		return Header{}, fmt.Errorf("%w: expected %#016x, got %#016x", ErrMagicMismatch, Magic, magic)
	}
	h := Header{
		EntryCount: binary.LittleEndian.Uint32(data[8:12]),
		Version:    binary.LittleEndian.Uint32(data[12:16]),
	}
	if h.Version != Version1 {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

// PutHeader writes the header into the first HeaderSize bytes of b.
func PutHeader(b []byte, h Header) {
	binary.LittleEndian.PutUint64(b[:8], Magic)
	binary.LittleEndian.PutUint32(b[8:12], h.EntryCount)
	binary.LittleEndian.PutUint32(b[12:16], h.Version)
}

// Descriptor is the logical form of one entry descriptor. The name is held
// as a plain string; the fixed 247-byte padded slot exists only on the wire.
type Descriptor struct {
	Name string

	// ContentsOffset is the entry's byte offset relative to the start of
	// the content region.
	ContentsOffset uint32

	// ContentsLen is the entry's content length in bytes.
	ContentsLen uint32
}

// ParseDescriptor validates and decodes one descriptor from the first
// DescriptorSize bytes of b. The caller is responsible for bounds-checking
// the descriptor table against the buffer.
func ParseDescriptor(b []byte) (Descriptor, error) {
	nameLen := int(b[0])
	if nameLen > EntryNameLenMax {
		return Descriptor{}, fmt.Errorf("%w: name_len %d exceeds %d", ErrNameTooLong, nameLen, EntryNameLenMax)
	}
	name := b[namePos : namePos+nameLen]
	if !utf8.Valid(name) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidUTF8, name)
	}
	return Descriptor{
		Name:           string(name),
		ContentsOffset: binary.LittleEndian.Uint32(b[contentsOffsetPos : contentsOffsetPos+4]),
		ContentsLen:    binary.LittleEndian.Uint32(b[contentsLenPos : contentsLenPos+4]),
	}, nil
}

// PutDescriptor writes d into the first DescriptorSize bytes of b, zero
// padding the name slot.
func PutDescriptor(b []byte, d Descriptor) error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	clear(b[:DescriptorSize])
	b[0] = byte(len(d.Name))
	copy(b[namePos:], d.Name)
	binary.LittleEndian.PutUint32(b[contentsOffsetPos:contentsOffsetPos+4], d.ContentsOffset)
	binary.LittleEndian.PutUint32(b[contentsLenPos:contentsLenPos+4], d.ContentsLen)
	return nil
}

// ValidateName checks the encode-side name constraints: byte length within
// EntryNameLenMax and valid UTF-8. Empty names are allowed.
func ValidateName(name string) error {
	if len(name) > EntryNameLenMax {
		return fmt.Errorf("%w: %d bytes, max %d", ErrNameTooLong, len(name), EntryNameLenMax)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUTF8, name)
	}
	return nil
}
