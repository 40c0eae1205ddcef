package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree together with the element wrappers and
// event listeners attached to its nodes.
type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node][]listenerEntry
	nextID    uint64
}

// Parse reads a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return newDocument(root), nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node][]listenerEntry),
	}
}

// QuerySelector returns the first element in document order matching the
// selector, or nil when nothing matches.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return d.wrap(sel.MatchFirst(d.root)), nil
}

// QuerySelectorAll returns every element matching the selector in document
// order. The search covers the whole document.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(sel.MatchAll(d.root)), nil
}

// CreateElement returns a new detached element owned by the document.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(node)
}

// Body returns the document body element, if present.
func (d *Document) Body() *Element {
	body, _ := d.QuerySelector("body")
	return body
}

// Render writes the document markup to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: render document: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Contains reports whether the element is attached to this document's tree.
func (d *Document) Contains(el *Element) bool {
	if el == nil || el.doc != d {
		return false
	}
	for n := el.node; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

func (d *Document) wrap(node *html.Node) *Element {
	if node == nil {
		return nil
	}
	if el, ok := d.elements[node]; ok {
		return el
	}
	el := &Element{doc: d, node: node}
	d.elements[node] = el
	return el
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Element, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, d.wrap(node))
	}
	return out
}

func compile(selector string) (cascadia.Selector, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return nil, fmt.Errorf("dom: selector is required")
	}
	sel, err := cascadia.Compile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("dom: compile selector %q: %w", trimmed, err)
	}
	return sel, nil
}
