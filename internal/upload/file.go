// Package upload holds the pending upload selection and its validation rules.
package upload

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	PDFMIMEType       = "application/pdf"
	MaxSize     int64 = 50 * 1024 * 1024
)

// File is a selected file handle with the attributes validation needs.
type File struct {
	Name     string
	Path     string
	MIMEType string
	Size     int64
}

// Open stats the file at path and detects its MIME type.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	return &File{
		Name:     info.Name(),
		Path:     path,
		MIMEType: DetectMIMEType(path),
		Size:     info.Size(),
	}, nil
}

// DetectMIMEType sniffs the file content and falls back to the extension
// table when the content is not recognised.
func DetectMIMEType(path string) string {
	if m, err := mimetype.DetectFile(path); err == nil && !m.Is("application/octet-stream") {
		return baseType(m.String())
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return baseType(byExt)
	}
	return "application/octet-stream"
}

// baseType drops MIME parameters such as "; charset=utf-8".
func baseType(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
