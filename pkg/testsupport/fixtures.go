package testsupport

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcollection/pkg/dom"
)

// LoadDocument reads an HTML fixture into a dom.Document, failing the test on
// error to keep setup concise.
func LoadDocument(t *testing.T, path string) *dom.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (*dom.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open document: %w", err)
	}
	defer file.Close()

	doc, err := dom.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse document: %w", err)
	}
	return doc, nil
}

// ParseDocument parses inline markup.
func ParseDocument(t *testing.T, markup string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// MustQuery returns the first element matching selector or fails the test.
func MustQuery(t *testing.T, doc *dom.Document, selector string) *dom.Element {
	t.Helper()

	el, err := doc.QuerySelector(selector)
	if err != nil {
		t.Fatalf("query %q: %v", selector, err)
	}
	if el == nil {
		t.Fatalf("query %q: no element matched", selector)
	}
	return el
}

// Texts returns the trimmed text content of each element.
func Texts(elements []*dom.Element) []string {
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		out = append(out, strings.TrimSpace(el.Text()))
	}
	return out
}

// Diff returns a cmp diff between want and got, empty when equal.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
