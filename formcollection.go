package formcollection

import (
	"context"
	"io"

	"github.com/goliatone/go-formcollection/internal/loader"
	"github.com/goliatone/go-formcollection/pkg/collection"
	"github.com/goliatone/go-formcollection/pkg/dom"
)

// Manager aliases collection.Manager for callers that only import the root
// package.
type Manager = collection.Manager

// Options aliases collection.Options.
type Options = collection.Options

// Option aliases collection.Option.
type Option = collection.Option

// Attributes aliases collection.Attributes.
type Attributes = collection.Attributes

// Document aliases dom.Document.
type Document = dom.Document

// ParseHTML parses a complete HTML document from r.
func ParseHTML(r io.Reader) (*Document, error) {
	return dom.Parse(r)
}

// LoadHTML fetches and parses a document from a file path or HTTP(S) URL.
func LoadHTML(ctx context.Context, location string) (*Document, error) {
	return loader.New().Load(ctx, location)
}

// Attach resolves the container selector in doc and initialises a Manager on
// it. It is the simplest entry point for callers that already hold a parsed
// document.
func Attach(doc *Document, selector string, options ...Option) (*Manager, error) {
	return collection.NewFromSelector(doc, selector, options...)
}
