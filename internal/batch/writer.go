package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sphereconfig/internal/deviceconfig"
	"sphereconfig/pkg/logging"
)

// Writer persists records into a single output directory.
type Writer struct {
	dir    string
	format Format
}

// NewWriter creates a Writer for dir. The directory is created on first write.
func NewWriter(dir string, format Format) *Writer {
	return &Writer{dir: dir, format: format}
}

// Write serializes rec and stores it as dir/name, creating the directory
// and its parents if needed. It returns the path written.
func (w *Writer) Write(rec deviceconfig.Record, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("file name cannot be empty")
	}

	data, err := w.format.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, sanitizeFilename(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	logging.Debug("Writer", "Wrote %s (%d bytes)", path, len(data))
	return path, nil
}

// Remove deletes a previously written file. A file that is already gone is not an error.
func (w *Writer) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	logging.Debug("Writer", "Removed %s", path)
	return nil
}

// sanitizeFilename keeps an explicit output file name inside the output directory.
func sanitizeFilename(name string) string {
	sanitized := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	).Replace(name)

	sanitized = strings.TrimSpace(sanitized)
	sanitized = strings.TrimLeft(sanitized, ".")

	if sanitized == "" {
		sanitized = "unnamed"
	}
	return sanitized
}
