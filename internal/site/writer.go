package site

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
)

// Writer writes files under root atomically and remembers what it wrote.
type Writer struct {
	root        string
	precompress bool
	written     []string
}

func NewWriter(root string, precompress bool) *Writer {
	return &Writer{root: root, precompress: precompress}
}

// compressible extensions get a .br sibling when precompression is on.
var compressible = map[string]bool{
	".html": true, ".css": true, ".xml": true, ".rss": true, ".json": true,
}

// Write stores body at rel (slash separated, relative to root).
func (w *Writer) Write(rel string, body []byte) error {
	rel = path.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return fmt.Errorf("site: refusing to write outside output dir: %q", rel)
	}

	dst := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := writeAtomic(dst, body); err != nil {
		return fmt.Errorf("site: write %s: %w", rel, err)
	}
	w.written = append(w.written, rel)

	if w.precompress && compressible[path.Ext(rel)] {
		br, err := compress(body)
		if err != nil {
			return fmt.Errorf("site: brotli %s: %w", rel, err)
		}
		if err := writeAtomic(dst+".br", br); err != nil {
			return fmt.Errorf("site: write %s.br: %w", rel, err)
		}
		w.written = append(w.written, rel+".br")
	}
	return nil
}

// CopyFile writes the contents of the local file src to rel.
func (w *Writer) CopyFile(rel, src string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return w.Write(rel, b)
}

// track records a file that is already in place.
func (w *Writer) track(rel string) {
	w.written = append(w.written, rel)
}

// Written lists every file written so far, relative to root.
func (w *Writer) Written() []string {
	return append([]string(nil), w.written...)
}

func writeAtomic(dst string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := bw.Write(b); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
