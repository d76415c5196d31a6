package utils

import (
	"strings"

	"go.lsp.dev/uri"
)

const fileScheme = "file://"

// IsFileURI reports whether s uses the file scheme
func IsFileURI(s string) bool {
	return strings.HasPrefix(s, fileScheme)
}

// URIToFilePath converts a file:// URI to a file system path.
// Anything that is not a file URI is returned unchanged.
func URIToFilePath(s string) string {
	if !IsFileURI(s) {
		return s
	}
	return uri.URI(s).Filename()
}

// FilePathToURI converts a file system path to a file:// URI
func FilePathToURI(path string) string {
	return string(uri.File(path))
}
