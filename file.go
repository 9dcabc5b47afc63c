package brarchive

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extension is the conventional file extension for BRArchive files.
const Extension = ".brarchive"

// DecodeFile reads and decodes the archive at path.
func DecodeFile(path string, opts ...DecodeOption) (*Archive, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return Decode(data, opts...)
}

// EncodeFile encodes entries and writes the archive to path.
//
// Uses atomic writes (temp file + rename) to prevent partial writes on
// failure. Parent directories are created as needed.
func EncodeFile(path string, entries map[string][]byte, opts ...EncodeOption) error {
	data, err := Encode(entries, opts...)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file then renames to target,
// ensuring atomic replacement of the target file.
func writeFileAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".brarchive-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
