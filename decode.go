package brarchive

import (
	"fmt"

	"github.com/brpack/brarchive/internal/layout"
)

// Decode parses a BRArchive buffer into an [Archive].
//
// The header and every descriptor are validated before any data is returned:
// magic, version, name length, name UTF-8 validity, and the bounds of every
// descriptor and content slice. Content offsets are trusted per descriptor,
// so archives with gaps or overlapping content decode; the encoder never
// produces them.
//
// When two descriptors share a name, the later descriptor wins. Use
// [DecodeWithRejectDuplicates] to fail with [ErrDuplicateName] instead.
//
// Decoded content is copied out of data; the caller may reuse the buffer
// after Decode returns.
func Decode(data []byte, opts ...DecodeOption) (*Archive, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	hdr, err := layout.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	contentStart := uint64(layout.HeaderSize) + uint64(hdr.EntryCount)*layout.DescriptorSize
	if contentStart > uint64(len(data)) {
		return nil, fmt.Errorf("%w: descriptor table for %d entries ends at %d, buffer is %d bytes",
			layout.ErrTruncated, hdr.EntryCount, contentStart, len(data))
	}

	entries := make(map[string][]byte, hdr.EntryCount)
	for i := uint64(0); i < uint64(hdr.EntryCount); i++ {
		descStart := uint64(layout.HeaderSize) + i*layout.DescriptorSize
		desc, err := layout.ParseDescriptor(data[descStart : descStart+layout.DescriptorSize])
		if err != nil {
			return nil, fmt.Errorf("descriptor %d at offset %d: %w", i, descStart, err)
		}

		begin := contentStart + uint64(desc.ContentsOffset)
		end := begin + uint64(desc.ContentsLen)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: entry %q content [%d:%d] exceeds %d-byte buffer",
				layout.ErrTruncated, desc.Name, begin, end, len(data))
		}

		if cfg.rejectDuplicates {
			if _, exists := entries[desc.Name]; exists {
				return nil, fmt.Errorf("descriptor %d: %w: %q", i, layout.ErrDuplicateName, desc.Name)
			}
		}

		content := make([]byte, desc.ContentsLen)
		copy(content, data[begin:end])
		entries[desc.Name] = content

		cfg.log().Debug("decoded entry", "name", desc.Name, "offset", desc.ContentsOffset, "size", desc.ContentsLen)
	}

	a := &Archive{
		entries:    entries,
		names:      sortedNames(entries),
		entryCount: hdr.EntryCount,
		version:    hdr.Version,
	}
	cfg.log().Debug("decoded archive", "entry_count", hdr.EntryCount, "distinct_names", a.Len(), "version", hdr.Version)
	return a, nil
}
