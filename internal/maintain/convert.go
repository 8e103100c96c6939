package maintain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dsmmcken/osh/internal/history"
	"github.com/dsmmcken/osh/internal/legacy"
	"github.com/dsmmcken/osh/internal/oshlog"
)

// Convert migrates path to the canonical ".osh" format, dispatching on
// its extension. A path already ending in ".osh" is a no-op: it is
// assumed to already be canonical.
func Convert(path string, timeout time.Duration) error {
	if strings.HasSuffix(path, ".osh") {
		return nil
	}
	format := legacy.FormatForPath(path)
	if format == legacy.FormatUnknown {
		return fmt.Errorf("maintain: no converter for %s", path)
	}
	events, err := legacy.Read(format, path)
	if err != nil {
		return err
	}
	return writeConverted(path, events, timeout)
}

// ConvertOshLegacy migrates a ".osh_legacy" file regardless of its
// extension, for callers that already know the format.
func ConvertOshLegacy(path string, timeout time.Duration) error {
	events, err := legacy.ReadOshLegacy(path)
	if err != nil {
		return err
	}
	return writeConverted(path, events, timeout)
}

// ConvertOldOsh migrates a pre-binary JSON-lines ".osh" file.
func ConvertOldOsh(path string, timeout time.Duration) error {
	events, err := legacy.ReadOldOsh(path)
	if err != nil {
		return err
	}
	return writeConverted(path, events, timeout)
}

func writeConverted(path string, events []history.Event, timeout time.Duration) error {
	forward := append([]history.Event(nil), events...)
	sort.SliceStable(forward, func(i, j int) bool {
		return forward[i].Timestamp.Before(forward[j].Timestamp)
	})

	newPath := oshPath(path)
	if err := oshlog.ForwardWrite(newPath, forward, timeout); err != nil {
		return err
	}
	if newPath != path {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("maintain: removing converted source %s: %w", path, err)
		}
	}
	return nil
}

// oshPath strips path's extension(s) and appends ".osh", mirroring the
// original converter's "drop every suffix, keep the stem" rule.
func oshPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return filepath.Join(dir, base+".osh")
}
