// Package upload checks uploaded image files and writes them to local disk.
package upload

import (
	"fmt"
	"io"
	"strings"

	"github.com/evcraddock/realstate-api/internal/apperr"
)

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "gif"}

// DefaultMaxSizeMB is the size limit used when none is configured.
const DefaultMaxSizeMB = 5

// Validator checks an upload's extension and size.
type Validator struct {
	allowed  map[string]bool
	maxBytes int64
}

// NewValidator creates a validator for the given extensions (without dots,
// any case) and maximum size in MiB.
func NewValidator(extensions []string, maxSizeMB int) *Validator {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = true
		}
	}
	return &Validator{allowed: allowed, maxBytes: int64(maxSizeMB) << 20}
}

// MaxBytes returns the size limit in bytes.
func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate checks filename's extension, then reads f to the end to measure
// it. On success f is positioned back at the start.
func (v *Validator) Validate(filename string, f io.ReadSeeker) error {
	ext := Extension(filename)
	if !v.allowed[ext] {
		return fmt.Errorf("%q: %w", filename, apperr.ErrUnsupportedFileType)
	}

	size, err := io.Copy(io.Discard, f)
	if err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}
	if size > v.maxBytes {
		return fmt.Errorf("%d bytes exceeds limit of %d: %w", size, v.maxBytes, apperr.ErrFileTooLarge)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding upload: %w", err)
	}
	return nil
}

// Extension returns the lowercased text after the final dot, or "" when the
// name has none.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}
