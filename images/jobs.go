package images

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ovml/ovdet/errdefs"
)

// JobExtensions are the directory-scan extensions, matched exactly
// (case-sensitive). A single-file argument bypasses the filter entirely.
var JobExtensions = []string{".png", ".jpg"}

// ResolveJobs turns the image argument into the ordered list of input
// paths. A path to an existing regular file yields exactly that file;
// anything else is treated as a directory whose immediate entries with a
// matching extension are collected in listing order. Subdirectories are
// not descended into.
func ResolveJobs(path string) ([]string, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errdefs.IO("failed to list image directory %s: %v", path, err)
	}

	var jobs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasJobExtension(entry.Name()) {
			jobs = append(jobs, filepath.Join(path, entry.Name()))
		}
	}
	return jobs, nil
}

func hasJobExtension(name string) bool {
	for _, ext := range JobExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
