// Package source loads portfolio documents from files, stdin, or HTTP
// endpoints. Documents may be JSON, YAML, or the single-service key=value
// form; the format is taken from the file extension or content type when
// available and sniffed from the payload otherwise.
package source

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"stackshift/internal/model"
)

// Source yields the current portfolio document. Fetch may be called
// repeatedly in watch mode; each call re-reads the underlying location.
type Source interface {
	Fetch(ctx context.Context) (*model.Portfolio, error)
	// Origin describes where the data comes from, for headers and logs.
	Origin() string
}

// Config holds the input location plus the HTTP options that apply when the
// location is a URL.
type Config struct {
	// Location is a file path, "-" for stdin, or an http(s) URL.
	Location           string
	Username           string
	Password           string
	InsecureSkipVerify bool
	RequestTimeout     time.Duration
}

// Open selects a source for the configured location: "-" reads stdin once,
// http(s) URLs fetch remotely, anything else is a file path.
func Open(cfg Config) (Source, error) {
	switch {
	case cfg.Location == "":
		return nil, fmt.Errorf("%w: input location is required", model.ErrInvalidInput)
	case cfg.Location == "-":
		return NewReaderSource(os.Stdin, "stdin"), nil
	case strings.HasPrefix(cfg.Location, "http://") || strings.HasPrefix(cfg.Location, "https://"):
		return NewHTTPSource(cfg)
	default:
		return NewFileSource(cfg.Location), nil
	}
}
