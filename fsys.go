package brarchive

import (
	"bytes"
	"io"
	"io/fs"
	"slices"
	"sort"
	"strings"
	"time"
)

// Interface compliance.
var (
	_ fs.FS         = (*Archive)(nil)
	_ fs.StatFS     = (*Archive)(nil)
	_ fs.ReadFileFS = (*Archive)(nil)
	_ fs.ReadDirFS  = (*Archive)(nil)
)

// Open implements fs.FS.
//
// Open returns an fs.File for the named entry, or a synthetic directory when
// name is a prefix of other entries. The returned file supports ReadAt and
// Seek over the in-memory content.
func (a *Archive) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if content, ok := a.entries[name]; ok {
		return &entryFile{
			Reader: bytes.NewReader(content),
			info:   fileInfo{name: baseName(name), size: int64(len(content))},
		}, nil
	}

	if a.isDir(name) {
		return &openDir{a: a, name: name}, nil
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Stat implements fs.StatFS.
//
// For directories (paths that are prefixes of other entries), Stat returns
// synthetic directory info.
func (a *Archive) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	if content, ok := a.entries[name]; ok {
		return &fileInfo{name: baseName(name), size: int64(len(content))}, nil
	}

	if a.isDir(name) {
		return &dirInfo{name: baseName(name)}, nil
	}

	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS.
//
// Unlike Content, the returned slice is a copy owned by the caller.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	content, ok := a.entries[name]
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrNotExist}
	}
	return slices.Clone(content), nil
}

// ReadDir implements fs.ReadDirFS.
//
// ReadDir returns directory entries for the named directory, sorted by name.
// Directory entries are synthesized from entry names; the archive does not
// store directories explicitly.
func (a *Archive) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	entries := a.dirChildren(name)
	if len(entries) == 0 && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return entries, nil
}

// isDir checks if name is a directory (has entries under it).
func (a *Archive) isDir(name string) bool {
	if name == "." {
		return true
	}
	prefix := name + "/"
	i := sort.SearchStrings(a.names, prefix)
	return i < len(a.names) && strings.HasPrefix(a.names[i], prefix)
}

// dirChildren synthesizes the immediate children of the named directory,
// sorted by child name. Files and subdirectories sharing a name keep the
// first occurrence in entry order.
func (a *Archive) dirChildren(name string) []fs.DirEntry {
	prefix := dirPrefix(name)
	start := sort.SearchStrings(a.names, prefix)

	seen := make(map[string]bool)
	var children []fs.DirEntry
	for _, full := range a.names[start:] {
		if !strings.HasPrefix(full, prefix) {
			break
		}
		child, isSubDir := childName(full, prefix)
		if child == "" || seen[child] {
			continue
		}
		seen[child] = true

		if isSubDir {
			children = append(children, &dirEntry{info: &dirInfo{name: child}})
		} else {
			children = append(children, &dirEntry{info: &fileInfo{name: child, size: int64(len(a.entries[full]))}})
		}
	}

	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })
	return children
}

// baseName returns the last element of a slash-separated entry name.
func baseName(name string) string {
	if name == "" || name == "." {
		return "."
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// dirPrefix converts a directory name to its child-matching prefix form:
// "." matches everything, other names match "name/...".
func dirPrefix(name string) string {
	if name == "." {
		return ""
	}
	return name + "/"
}

// childName extracts the immediate child element of full under prefix and
// reports whether deeper path components follow it.
func childName(full, prefix string) (string, bool) {
	rel := strings.TrimPrefix(full, prefix)
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i], true
	}
	return rel, false
}

// entryFile implements fs.File over in-memory entry content.
type entryFile struct {
	*bytes.Reader
	info fileInfo
}

func (f *entryFile) Stat() (fs.FileInfo, error) { return &f.info, nil }
func (f *entryFile) Close() error               { return nil }

// openDir implements fs.File and fs.ReadDirFile for synthetic directories.
type openDir struct {
	a        *Archive
	name     string
	children []fs.DirEntry
	loaded   bool
	pos      int
}

func (d *openDir) Read(_ []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: fs.ErrInvalid}
}

func (d *openDir) Stat() (fs.FileInfo, error) {
	return &dirInfo{name: baseName(d.name)}, nil
}

func (d *openDir) Close() error {
	return nil
}

func (d *openDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if !d.loaded {
		d.children = d.a.dirChildren(d.name)
		d.loaded = true
	}

	if n <= 0 {
		entries := d.children[d.pos:]
		d.pos = len(d.children)
		return entries, nil
	}

	if d.pos >= len(d.children) {
		return nil, io.EOF
	}
	end := min(d.pos+n, len(d.children))
	entries := d.children[d.pos:end]
	d.pos = end
	return entries, nil
}

// fileInfo implements fs.FileInfo for archive entries. Entries carry no
// metadata beyond name and size; mode and time are synthetic.
type fileInfo struct {
	name string
	size int64
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return 0o444 }
func (fi *fileInfo) ModTime() time.Time { return time.Time{} }
func (fi *fileInfo) IsDir() bool        { return false }
func (fi *fileInfo) Sys() any           { return nil }

// dirInfo implements fs.FileInfo for synthetic directories.
type dirInfo struct {
	name string
}

func (di *dirInfo) Name() string       { return di.name }
func (di *dirInfo) Size() int64        { return 0 }
func (di *dirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o755 }
func (di *dirInfo) ModTime() time.Time { return time.Time{} }
func (di *dirInfo) IsDir() bool        { return true }
func (di *dirInfo) Sys() any           { return nil }

// dirEntry implements fs.DirEntry by wrapping fs.FileInfo.
type dirEntry struct {
	info fs.FileInfo
}

func (de *dirEntry) Name() string               { return de.info.Name() }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() fs.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (fs.FileInfo, error) { return de.info, nil }
