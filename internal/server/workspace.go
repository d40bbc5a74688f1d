package server

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// isChromiumSrcDir reports whether path looks like the root of a Chromium
// checkout: named "src" with a ".gclient" file next to it.
func isChromiumSrcDir(path string) bool {
	if filepath.Base(path) != "src" {
		return false
	}
	parent := filepath.Dir(path)
	info, err := os.Stat(filepath.Join(parent, ".gclient"))
	return err == nil && !info.IsDir()
}

// findChromiumSrcDir walks up from path looking for a Chromium src
// directory, returning the original path unchanged if none is found.
func findChromiumSrcDir(path string) string {
	if isChromiumSrcDir(path) {
		return path
	}
	original := path
	for {
		parent := filepath.Dir(path)
		if parent == path {
			return original
		}
		path = parent
		if isChromiumSrcDir(path) {
			return path
		}
	}
}

// filePathFromURI decodes a file:// URI to a filesystem path. Only the
// file scheme is accepted per §4.F.
func filePathFromURI(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return u.Path, true
}

// resolveWorkspaceRoot implements the heuristic from §4.F: prefer rootUri,
// fall back to rootPath, then walk up for a Chromium checkout root. An
// empty root is acceptable and resolves to "".
func resolveWorkspaceRoot(params InitializeParams) string {
	var path string
	switch {
	case params.RootURI != nil:
		if p, ok := filePathFromURI(*params.RootURI); ok {
			path = p
		}
	case params.RootPath != nil:
		path = *params.RootPath
	}
	if path == "" {
		return ""
	}
	path = strings.TrimSuffix(path, "/")
	return findChromiumSrcDir(path)
}
