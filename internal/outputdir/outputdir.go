// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outputdir prepares the per-run output directory.
package outputdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prepare returns an existing output directory under outputRoot, named after
// the input file's base name unless override is given.
func Prepare(inputPath, outputRoot, override string) (string, error) {
	name := override
	if name == "" {
		base := filepath.Base(inputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive output folder name from %q", inputPath)
	}

	dir := filepath.Join(outputRoot, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output folder %s: %w", dir, err)
	}
	return dir, nil
}
