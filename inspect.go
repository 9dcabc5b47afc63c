package brarchive

import (
	"fmt"
	"slices"
	"sync"

	"github.com/opencontainers/go-digest"

	"github.com/brpack/brarchive/internal/layout"
)

// EntryInfo describes one descriptor of an inspected archive.
type EntryInfo struct {
	// Name is the entry name.
	Name string

	// Offset is the entry's content offset relative to the content region.
	Offset uint32

	// Size is the entry's content length in bytes.
	Size uint32

	// Digest is the SHA-256 digest of the entry's content.
	Digest digest.Digest
}

// InspectResult contains metadata about an archive buffer without the
// decoded name-to-content mapping.
type InspectResult struct {
	version    uint32
	entryCount uint32
	infos      []EntryInfo

	// Lazy computed stats
	statsOnce        sync.Once
	totalContentSize uint64
}

// Version returns the archive format version.
func (r *InspectResult) Version() uint32 {
	return r.version
}

// EntryCount returns the entry count recorded in the header.
func (r *InspectResult) EntryCount() uint32 {
	return r.entryCount
}

// Entries returns one EntryInfo per descriptor, in descriptor order.
// Duplicate names are reported as-is, one EntryInfo each.
func (r *InspectResult) Entries() []EntryInfo {
	return slices.Clone(r.infos)
}

// TotalContentSize returns the sum of all entry content sizes.
// This iterates all entries on first call; the result is cached.
func (r *InspectResult) TotalContentSize() uint64 {
	r.statsOnce.Do(func() {
		for i := range r.infos {
			r.totalContentSize += uint64(r.infos[i].Size)
		}
	})
	return r.totalContentSize
}

// Inspect reads archive metadata without building the name-to-content
// mapping: header fields plus name, location, and content digest per
// descriptor.
//
// Inspect applies the same validation as [Decode]; it is not a lenient mode.
// Content bytes are read only to compute digests and are not retained.
func Inspect(data []byte, opts ...DecodeOption) (*InspectResult, error) {
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

	infos := make([]EntryInfo, 0, hdr.EntryCount)
	var seen map[string]bool
	if cfg.rejectDuplicates {
		seen = make(map[string]bool, hdr.EntryCount)
	}
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
			if seen[desc.Name] {
				return nil, fmt.Errorf("descriptor %d: %w: %q", i, layout.ErrDuplicateName, desc.Name)
			}
			seen[desc.Name] = true
		}

		infos = append(infos, EntryInfo{
			Name:   desc.Name,
			Offset: desc.ContentsOffset,
			Size:   desc.ContentsLen,
			Digest: digest.FromBytes(data[begin:end]),
		})
	}

	return &InspectResult{
		version:    hdr.Version,
		entryCount: hdr.EntryCount,
		infos:      infos,
	}, nil
}
