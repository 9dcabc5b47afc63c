package brarchive

import "github.com/brpack/brarchive/internal/layout"

// Errors re-exported from internal/layout. All are terminal for the call
// that raised them; the codec never attempts partial recovery.
var (
	// ErrMagicMismatch is returned when the first 8 header bytes are not
	// the format magic.
	ErrMagicMismatch = layout.ErrMagicMismatch

	// ErrUnsupportedVersion is returned when the header version is not in
	// the supported set {1}.
	ErrUnsupportedVersion = layout.ErrUnsupportedVersion

	// ErrNameTooLong is returned when an entry name exceeds 247 bytes,
	// on either decode or encode.
	ErrNameTooLong = layout.ErrNameTooLong

	// ErrInvalidUTF8 is returned when an entry name is not valid UTF-8.
	ErrInvalidUTF8 = layout.ErrInvalidUTF8

	// ErrTruncated is returned when a descriptor or content slice would
	// read past the end of the supplied buffer.
	ErrTruncated = layout.ErrTruncated

	// ErrArchiveTooLarge is returned when encoded content would overflow
	// the format's 32-bit offset and length fields.
	ErrArchiveTooLarge = layout.ErrArchiveTooLarge

	// ErrDuplicateName is returned when DecodeWithRejectDuplicates is set
	// and two descriptors share a name.
	ErrDuplicateName = layout.ErrDuplicateName
)
