package brarchive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// CopyOption configures CopyTo and CopyDir operations.
type CopyOption func(*copyConfig)

type copyConfig struct {
	overwrite bool
	workers   int
}

// CopyWithOverwrite allows overwriting existing files.
// By default, existing files are skipped.
func CopyWithOverwrite(overwrite bool) CopyOption {
	return func(c *copyConfig) {
		c.overwrite = overwrite
	}
}

// CopyWithWorkers sets the number of workers for parallel extraction.
// Values < 0 force serial processing. Zero uses automatic heuristics.
// Values > 0 force a specific worker count.
func CopyWithWorkers(n int) CopyOption {
	return func(c *copyConfig) {
		c.workers = n
	}
}

// CopyStats contains statistics about a copy operation.
type CopyStats struct {
	// FileCount is the number of files written.
	FileCount int

	// TotalBytes is the number of content bytes written.
	TotalBytes uint64

	// Skipped is the number of existing files left in place.
	Skipped int
}

// CopyTo extracts specific entries to a destination directory.
//
// Files are written atomically using temp files and renames, at their full
// entry path under destDir. Parent directories are created as needed.
// Names that are invalid paths or not present in the archive are ignored.
//
// By default existing files are skipped; use CopyWithOverwrite to overwrite.
func (a *Archive) CopyTo(destDir string, names ...string) (CopyStats, error) {
	cfg := copyConfig{}
	return a.copyEntries(destDir, a.collectNames(names), &cfg)
}

// CopyToWithOptions extracts specific entries with options.
func (a *Archive) CopyToWithOptions(destDir string, names []string, opts ...CopyOption) (CopyStats, error) {
	cfg := copyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return a.copyEntries(destDir, a.collectNames(names), &cfg)
}

// CopyDir extracts all entries under a directory prefix to a destination.
//
// If prefix is "" or ".", all entries in the archive are extracted. Entries
// keep their full path under destDir.
//
// Files are written atomically using temp files and renames. Parent
// directories are created as needed.
//
// By default existing files are skipped; use CopyWithOverwrite to overwrite.
func (a *Archive) CopyDir(destDir, prefix string, opts ...CopyOption) (CopyStats, error) {
	cfg := copyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return a.copyEntries(destDir, a.collectPrefixNames(prefix), &cfg)
}

// collectNames keeps names that are valid paths and present in the archive.
func (a *Archive) collectNames(names []string) []string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if !fs.ValidPath(name) {
			continue
		}
		if _, ok := a.entries[name]; !ok {
			continue
		}
		kept = append(kept, name)
	}
	return kept
}

// collectPrefixNames collects all entry names under a directory prefix.
func (a *Archive) collectPrefixNames(prefix string) []string {
	if prefix == "" || prefix == "." {
		return a.Names()
	}
	if !fs.ValidPath(prefix) {
		return nil
	}

	dirPrefix := prefix + "/"
	start := sort.SearchStrings(a.names, dirPrefix)
	var names []string
	for _, name := range a.names[start:] {
		if !strings.HasPrefix(name, dirPrefix) {
			break
		}
		names = append(names, name)
	}
	return names
}

// copyEntries writes the named entries under destDir with a bounded worker
// pool.
func (a *Archive) copyEntries(destDir string, names []string, cfg *copyConfig) (CopyStats, error) {
	if len(names) == 0 {
		return CopyStats{}, nil
	}
	for _, name := range names {
		if !fs.ValidPath(name) {
			return CopyStats{}, &fs.PathError{Op: "copy", Path: name, Err: fs.ErrInvalid}
		}
	}

	workers := cfg.workers
	switch {
	case workers < 0:
		workers = 1
	case workers == 0:
		workers = min(runtime.GOMAXPROCS(0), len(names))
	}

	var (
		files   atomic.Int64
		skipped atomic.Int64
		written atomic.Uint64
	)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, name := range names {
		g.Go(func() error {
			destPath := filepath.Join(destDir, filepath.FromSlash(name))
			if _, err := os.Stat(destPath); err == nil {
				if !cfg.overwrite {
					skipped.Add(1)
					return nil
				}
				// os.Rename replaces files atomically on Unix but fails on
				// Windows when the destination exists.
				_ = os.Remove(destPath)
			}

			if err := os.MkdirAll(filepath.Dir(destPath), 0o750); err != nil {
				return fmt.Errorf("create directory for %s: %w", name, err)
			}
			content := a.entries[name]
			if err := writeFileAtomic(destPath, content); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}

			files.Add(1)
			written.Add(uint64(len(content)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CopyStats{}, err
	}

	return CopyStats{
		FileCount:  int(files.Load()),
		TotalBytes: written.Load(),
		Skipped:    int(skipped.Load()),
	}, nil
}
