package brarchive

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"

	"github.com/brpack/brarchive/internal/layout"
)

// Archive is a decoded BRArchive: an immutable mapping from entry names to
// content, plus the header metadata it was decoded with.
//
// Archive implements fs.FS, fs.StatFS, fs.ReadFileFS, and fs.ReadDirFS,
// treating entry names as slash-separated paths. Entries whose names are not
// valid fs paths (for example the empty name) are reachable through Content
// but not through the fs view.
type Archive struct {
	entries    map[string][]byte
	names      []string // sorted ascending, byte-wise
	entryCount uint32
	version    uint32
}

// New builds an Archive from a mapping of entry names to content.
//
// Every name must be valid UTF-8 of at most 247 bytes. Content is copied, so
// the caller may reuse the input map and slices.
func New(entries map[string][]byte) (*Archive, error) {
	if uint64(len(entries)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries exceed the 32-bit entry count", layout.ErrArchiveTooLarge, len(entries))
	}
	m := make(map[string][]byte, len(entries))
	for name, content := range entries {
		if err := layout.ValidateName(name); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		m[name] = slices.Clone(content)
	}
	return &Archive{
		entries:    m,
		names:      sortedNames(m),
		entryCount: uint32(len(m)),
		version:    layout.Version1,
	}, nil
}

// Version returns the archive format version from the header.
func (a *Archive) Version() uint32 {
	return a.version
}

// EntryCount returns the entry count recorded in the header.
//
// When an archive holds duplicate descriptor names, later descriptors
// overwrite earlier ones during decode, so EntryCount can exceed Len.
func (a *Archive) EntryCount() uint32 {
	return a.entryCount
}

// Len returns the number of distinct entry names.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Names returns all entry names in byte-wise ascending order.
func (a *Archive) Names() []string {
	return slices.Clone(a.names)
}

// Content returns the content of the named entry.
//
// The returned slice aliases archive data and must be treated as immutable.
func (a *Archive) Content(name string) ([]byte, bool) {
	content, ok := a.entries[name]
	return content, ok
}

// Entries returns an iterator over all entries in byte-wise ascending name
// order.
//
// The yielded content aliases archive data and must be treated as immutable.
func (a *Archive) Entries() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for _, name := range a.names {
			if !yield(name, a.entries[name]) {
				return
			}
		}
	}
}

// Encode serializes the archive back to a BRArchive buffer.
//
// Encoding is deterministic, so decode-encode-decode round trips are stable.
func (a *Archive) Encode(opts ...EncodeOption) ([]byte, error) {
	return Encode(a.entries, opts...)
}

// sortedNames returns the keys of entries in byte-wise ascending order.
func sortedNames(entries map[string][]byte) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
