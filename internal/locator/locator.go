package locator

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultMarker is the empty file that marks the migrations root.
const DefaultMarker = ".gen_root"

// ErrRootNotFound is returned when no ancestor holds the marker file.
var ErrRootNotFound = errors.New("could not find any gen root")

// Find walks up from start and returns the nearest directory containing marker.
func Find(fs afero.Fs, start, marker string) (string, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	dir := filepath.Clean(start)
	for {
		info, err := fs.Stat(filepath.Join(dir, marker))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above %s", ErrRootNotFound, marker, start)
		}
		dir = parent
	}
}
