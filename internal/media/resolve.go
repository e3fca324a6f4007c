package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scribe/internal/services"
)

// Resolve turns an operator-supplied path into the ordered list of media
// files to process. A single file must carry a supported extension; a
// directory is enumerated (recursively when requested) and filtered to the
// supported set. The result is sorted lexicographically by full path so
// repeated runs over an unchanged tree are byte-identical.
func Resolve(path string, recursive bool) ([]MediaFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "resolver", "stat", path, nil)
		}
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	if !info.IsDir() {
		kind, ok := Classify(path)
		if !ok {
			return nil, services.Wrap(services.ErrUnsupportedFormat, "resolver", "classify",
				fmt.Sprintf("%s (supported: %s)", path, strings.Join(SupportedExtensions(), ", ")), nil)
		}
		return []MediaFile{{Path: path, Kind: kind}}, nil
	}

	var files []MediaFile
	if recursive {
		err = filepath.WalkDir(path, func(entry string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			if kind, ok := Classify(entry); ok {
				files = append(files, MediaFile{Path: entry, Kind: kind})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
	} else {
		entries, readErr := os.ReadDir(path)
		if readErr != nil {
			return nil, fmt.Errorf("scan %s: %w", path, readErr)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			full := filepath.Join(path, entry.Name())
			if kind, ok := Classify(full); ok {
				files = append(files, MediaFile{Path: full, Kind: kind})
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
