package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the canonical NAAb source file extension. A `use` path
// with any other extension (or none) is tried as-is first, then with
// this extension appended.
const SourceExt = ".naab"

// ResolveModulePath resolves a `use` statement's path to an absolute
// file, trying in order: relative to importerDir, each of searchPaths,
// then globalDir (the shared module cache directory, used as a final
// fallback). An empty globalDir is skipped.
func ResolveModulePath(path, importerDir string, searchPaths []string, globalDir string) (string, error) {
	tried := make([]string, 0, 2+len(searchPaths))

	if importerDir != "" {
		if resolved, ok := probeDir(importerDir, path, &tried); ok {
			return resolved, nil
		}
	}
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		if resolved, ok := probeDir(dir, path, &tried); ok {
			return resolved, nil
		}
	}
	if globalDir != "" {
		if resolved, ok := probeDir(globalDir, path, &tried); ok {
			return resolved, nil
		}
	}

	return "", fmt.Errorf("module %q not found (searched: %s)", path, strings.Join(tried, ", "))
}

// probeDir tries path and path+SourceExt under dir, in that order, and
// records every candidate it rejects into tried for the final error.
func probeDir(dir, path string, tried *[]string) (string, bool) {
	base := path
	if filepath.IsAbs(path) {
		base = path
	} else {
		base = filepath.Join(dir, path)
	}

	candidates := []string{base}
	if filepath.Ext(base) != SourceExt {
		candidates = append(candidates, base+SourceExt)
	}

	for _, c := range candidates {
		*tried = append(*tried, c)
		if fileExists(c) {
			abs, err := filepath.Abs(c)
			if err != nil {
				return c, true
			}
			return abs, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// leafName strips directory and extension from a resolved path, used
// to bind a bare `use <path>` under the path's leaf name.
func leafName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
