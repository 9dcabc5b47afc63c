package brarchive

import (
	"fmt"
	"math"
	"sort"

	"github.com/brpack/brarchive/internal/layout"
)

// Encode serializes a mapping of entry names to content into a BRArchive
// buffer.
//
// Entries are written in byte-wise ascending name order, so encoding an
// equivalent mapping always produces byte-identical output regardless of the
// map's iteration order. Content is packed contiguously with no padding.
//
// Every name must be valid UTF-8 of at most 247 bytes. Content exceeding the
// format's 32-bit offset and length fields fails with [ErrArchiveTooLarge]
// before any value wraps.
func Encode(entries map[string][]byte, opts ...EncodeOption) ([]byte, error) {
	cfg := encodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	if uint64(len(names)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries exceed the 32-bit entry count", layout.ErrArchiveTooLarge, len(names))
	}

	var total uint64
	for _, name := range names {
		if err := layout.ValidateName(name); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		size := uint64(len(entries[name]))
		if size > math.MaxUint32 {
			return nil, fmt.Errorf("%w: entry %q is %d bytes, max %d", layout.ErrArchiveTooLarge, name, size, uint64(math.MaxUint32))
		}
		total += size
		if total > math.MaxUint32 {
			return nil, fmt.Errorf("%w: content region is %d bytes, max %d", layout.ErrArchiveTooLarge, total, uint64(math.MaxUint32))
		}
	}

	tableSize := uint64(len(names)) * layout.DescriptorSize
	buf := make([]byte, uint64(layout.HeaderSize)+tableSize+total)
	layout.PutHeader(buf, layout.Header{
		EntryCount: uint32(len(names)),
		Version:    layout.Version1,
	})

	contentStart := uint64(layout.HeaderSize) + tableSize
	var offset uint32
	for i, name := range names {
		content := entries[name]
		desc := layout.Descriptor{
			Name:           name,
			ContentsOffset: offset,
			ContentsLen:    uint32(len(content)),
		}
		descStart := uint64(layout.HeaderSize) + uint64(i)*layout.DescriptorSize
		if err := layout.PutDescriptor(buf[descStart:], desc); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		copy(buf[contentStart+uint64(offset):], content)
		offset += uint32(len(content))
	}

	cfg.log().Debug("encoded archive", "entry_count", len(names), "size", len(buf))
	return buf, nil
}
