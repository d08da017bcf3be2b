package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stackshift/internal/model"
)

const maxDocumentBytes = 32 * 1024 * 1024 // 32 MB — well above any real portfolio document

// FileSource reads a portfolio document from a file path. Each Fetch
// re-reads the file, so watch mode picks up edits.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Origin() string { return s.path }

func (s *FileSource) Fetch(ctx context.Context) (*model.Portfolio, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	p, err := Decode(data, formatForPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(s.path), err)
	}
	p.FetchedAt = time.Now()
	return p, nil
}

// formatForPath maps known extensions to formats; anything else is sniffed.
func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// ReaderSource decodes a portfolio document from a stream. Used for stdin;
// the stream is consumed on the first Fetch, so it cannot back watch mode.
type ReaderSource struct {
	r    io.Reader
	name string
}

func NewReaderSource(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{r: r, name: name}
}

func (s *ReaderSource) Origin() string { return s.name }

func (s *ReaderSource) Fetch(ctx context.Context) (*model.Portfolio, error) {
	data, err := io.ReadAll(io.LimitReader(s.r, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}
	p, err := Decode(data, FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	p.FetchedAt = time.Now()
	return p, nil
}
