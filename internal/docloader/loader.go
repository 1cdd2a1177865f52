// Package docloader extracts plain text from documents for analysis.
// Binary formats (PDF, DOCX) are accepted by the upstream platform but are
// converted before they reach this service; only plain text is parsed here.
package docloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileSizeMB is the default size cap applied when no configuration
// overrides it.
const MaxFileSizeMB = 10

var supportedExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
}

// IsSupported reports whether the file's extension can be loaded.
func IsSupported(filename string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ValidateSize checks size in bytes against a megabyte cap.
func ValidateSize(size int64, maxMB int) error {
	if size > int64(maxMB)*1024*1024 {
		return fmt.Errorf("file too large: maximum size is %dMB", maxMB)
	}
	return nil
}

// LoadFile reads and decodes the file at path. The extension must be
// supported and the file within the size cap.
func LoadFile(path string, maxMB int) (string, error) {
	if !IsSupported(path) {
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if err := ValidateSize(info.Size(), maxMB); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data), nil
}

// Decode interprets raw bytes as UTF-8, falling back to Latin-1 when the
// bytes are not valid UTF-8.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	// Latin-1 maps each byte directly to the code point of the same value.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
