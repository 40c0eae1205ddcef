// Package loader fetches HTML documents for the CLI and examples from a file
// path, an fs.FS or an HTTP(S) URL and parses them into a dom.Document.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-formcollection/pkg/dom"
)

// Loader resolves a location string to a parsed document.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS resolves relative, non-URL locations inside files instead of the
// working directory.
func WithFS(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient overrides the client used for URL locations.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithTimeout bounds each HTTP request.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// New constructs a Loader. HTTP loading uses http.DefaultClient unless a
// client is supplied.
func New(options ...Option) *Loader {
	l := &Loader{http: http.DefaultClient}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches and parses the document at location.
func (l *Loader) Load(ctx context.Context, location string) (*dom.Document, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("loader: location is required")
	}

	var (
		data []byte
		err  error
	)
	switch {
	case isURL(location):
		data, err = loadHTTP(ctx, l.http, location, l.timeout)
	case l.fs != nil:
		data, err = loadFromFS(ctx, l.fs, location)
	default:
		data, err = loadFile(ctx, location)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: load %q: %w", location, err)
	}

	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loader: %q: %w", location, err)
	}
	return doc, nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
