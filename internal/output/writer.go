package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/reposnaphq/reposnap/internal/github"
)

// indent matches the four-space indentation of the original summary files.
const indent = "    "

// Writer assembles the summary document in memory and persists it on Flush.
// It is safe for concurrent use.
type Writer struct {
	mu      sync.Mutex
	doc     map[string][]github.RepositorySummary
	records int

	// Exactly one of stream and path is set.
	stream io.Writer
	path   string
}

// NewWriter creates a writer that encodes the document to w on Flush.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		doc:    make(map[string][]github.RepositorySummary),
		stream: w,
	}
}

// NewFileWriter creates a writer that persists the document to filename.
// Nothing touches the filesystem until Flush; the write is atomic, going
// through a temporary file renamed over the target.
func NewFileWriter(filename string) *Writer {
	return &Writer{
		doc:  make(map[string][]github.RepositorySummary),
		path: filename,
	}
}

// Add records the summaries for one username, replacing any earlier entry
// for the same name. A nil slice is stored as an empty one so a user with
// zero repositories shows up as an empty array rather than null.
func (w *Writer) Add(username string, records []github.RepositorySummary) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if records == nil {
		records = []github.RepositorySummary{}
	}
	if prev, ok := w.doc[username]; ok {
		w.records -= len(prev)
	}
	w.doc[username] = records
	w.records += len(records)
}

// Count returns the total number of records across all usernames.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.records
}

// Flush persists the complete current document. For file writers each call
// rewrites the whole file; for stream writers each call encodes the whole
// document again.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.MarshalIndent(w.doc, "", indent)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	data = append(data, '\n')

	if w.stream != nil {
		if _, err := w.stream.Write(data); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		return nil
	}

	return writeFileAtomic(w.path, data)
}

// writeFileAtomic writes data to a temporary file beside filename, syncs it,
// and renames it into place so readers never observe a partial document.
func writeFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tempFile := filename + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	file, err := os.Open(tempFile)
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
