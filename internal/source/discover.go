// Package source implements source discovery and the archive cache:
// enumerating files under a base directory and keeping archived.osh as
// a single canonical merge of the (slow to parse) legacy archive
// sources.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ArchiveDir, ActiveDir, LocalFile, and CacheFile are the fixed names
// of the source-directory layout.
const (
	ArchiveDir = "archive"
	ActiveDir  = "active"
	LocalFile  = "local.osh"
	CacheFile  = "archived.osh"
)

var recognizedExtensions = []string{".osh", ".osh_legacy", ".zsh_history"}

// Discover recursively walks dir for files with a recognized
// extension, resolving symlinks and deduplicating by resolved path.
// A missing dir yields no sources, not an error.
func Discover(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !hasRecognizedExtension(path) {
			return nil
		}
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return err
		}
		if !seen[resolved] {
			seen[resolved] = true
			out = append(out, resolved)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return out, nil
}

func hasRecognizedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range recognizedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DiscoverArchive finds archive sources under base/archive.
func DiscoverArchive(base string) ([]string, error) {
	return Discover(filepath.Join(base, ArchiveDir))
}

// DiscoverActive finds active sources under base/active, plus
// base/local.osh if it exists (resolving the symlink, as local.osh is
// typically a symlink into active/ for the current machine).
func DiscoverActive(base string) ([]string, error) {
	paths, err := Discover(filepath.Join(base, ActiveDir))
	if err != nil {
		return nil, err
	}

	local := filepath.Join(base, LocalFile)
	if resolved, err := filepath.EvalSymlinks(local); err == nil {
		paths = dedupeAppend(paths, resolved)
	}
	return paths, nil
}

func dedupeAppend(paths []string, p string) []string {
	for _, existing := range paths {
		if existing == p {
			return paths
		}
	}
	return append(paths, p)
}
