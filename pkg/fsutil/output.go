package fsutil

import (
	"path/filepath"
	"strings"
)

// OutputPath returns where the conversion of input is written.
//
// The Markdown extension of input is replaced by ext. When outDir is set the
// file is placed under it, keeping its path relative to baseDir; inputs
// outside baseDir keep only their file name.
func OutputPath(input, ext, outDir, baseDir string) string {
	name := strings.TrimSuffix(input, filepath.Ext(input)) + ext
	if outDir == "" {
		return name
	}

	rel, err := filepath.Rel(baseDir, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, rel)
}
