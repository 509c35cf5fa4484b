// Package fs implements the on-disk dataset sink. Each capture becomes
// three sibling files in the dataset directory: the structured record as
// JSON, the cleaned markup as Markdown with frontmatter, and the LLM
// rendering as plain text.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
)

// Ensure Writer implements qrdocs.Sink at compile time.
var _ qrdocs.Sink = (*Writer)(nil)

// Writer writes captures to a dataset directory with atomic update
// semantics: files land in <baseDir>/<name>.tmp and move to
// <baseDir>/<name> on Commit, so a crashed or aborted run never leaves a
// half-written dataset behind. Writer is safe for concurrent use.
type Writer struct {
	baseDir string
	name    string
	conv    qrdocs.Converter

	mu  sync.Mutex
	seq int
}

// NewWriter creates a new Writer. baseDir is the parent directory, name
// is the dataset directory name. conv, when non-nil, produces the
// Markdown rendition of each capture's cleaned markup.
func NewWriter(baseDir, name string, conv qrdocs.Converter) *Writer {
	return &Writer{
		baseDir: baseDir,
		name:    name,
		conv:    conv,
	}
}

func (w *Writer) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

func (w *Writer) finalDir() string {
	return filepath.Join(w.baseDir, w.name)
}

// Push writes one capture's files. Files are numbered in arrival order;
// under concurrency that order is completion order, not discovery order.
func (w *Writer) Push(ctx context.Context, capture *qrdocs.Capture) error {
	if err := capture.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	base := filepath.Join(w.tempDir(), fmt.Sprintf("%03d-%s", w.seq, slug(capture.URL)))

	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	record, err := json.MarshalIndent(capture, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".json", record, 0644); err != nil {
		return err
	}

	if err := os.WriteFile(base+".txt", []byte(capture.Rendering), 0644); err != nil {
		return err
	}

	if w.conv != nil && strings.TrimSpace(capture.HTML) != "" {
		markdown, err := w.conv.Convert(capture.HTML)
		if err != nil {
			return err
		}
		content := formatMarkdown(capture, markdown)
		if err := os.WriteFile(base+".md", []byte(content), 0644); err != nil {
			return err
		}
	}

	return nil
}

// Commit atomically replaces the dataset directory with this run's files.
func (w *Writer) Commit() error {
	if err := os.RemoveAll(w.finalDir()); err != nil {
		return err
	}
	return os.Rename(w.tempDir(), w.finalDir())
}

// Abort discards this run's files, leaving any previous dataset intact.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}

// formatMarkdown renders a capture's Markdown file with YAML frontmatter.
func formatMarkdown(capture *qrdocs.Capture, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(capture.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(capture.Title)
	b.WriteString("\ncaptured: ")
	b.WriteString(capture.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// slug derives a filesystem-safe name from a URL's path.
// Example: https://dash.example.com/events/123 -> events-123
func slug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "page"
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "index"
	}

	var b strings.Builder
	for _, r := range strings.ToLower(path) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '/' || r == '-' || r == '_' || r == '.':
			b.WriteByte('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "page"
	}
	return s
}
