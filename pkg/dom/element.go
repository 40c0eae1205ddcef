package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Position selects where InsertAdjacentElement and InsertAdjacentHTML place
// new content relative to the reference element.
type Position string

const (
	BeforeBegin Position = "beforebegin"
	AfterBegin  Position = "afterbegin"
	BeforeEnd   Position = "beforeend"
	AfterEnd    Position = "afterend"
)

// Element wraps an element node. Wrappers are cached per node so the same
// node always yields the same *Element.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr assigns an attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for idx, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.node.Attr[idx].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	name = strings.ToLower(name)
	kept := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		kept = append(kept, attr)
	}
	e.node.Attr = kept
}

// Data reads a data-* attribute. The key is given without the prefix in its
// hyphenated form, e.g. "allow-add" for data-allow-add.
func (e *Element) Data(key string) (string, bool) {
	return e.Attr("data-" + key)
}

// SetData writes a data-* attribute.
func (e *Element) SetData(key, value string) {
	e.SetAttr("data-"+key, value)
}

// Classes returns the class list in attribute order.
func (e *Element) Classes() []string {
	value, _ := e.Attr("class")
	return strings.Fields(value)
}

// HasClass reports class list membership.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes(), name)
}

// AddClass appends classes that are not already present. Existing classes are
// never removed.
func (e *Element) AddClass(names ...string) {
	classes := e.Classes()
	changed := false
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(classes, name) {
			continue
		}
		classes = append(classes, name)
		changed = true
	}
	if changed {
		e.SetAttr("class", strings.Join(classes, " "))
	}
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(&b, e.node)
	return b.String()
}

// SetText replaces all children with a single text node. The value is never
// interpreted as markup.
func (e *Element) SetText(value string) {
	e.clearChildren()
	if value == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return ""
	}
	return buf.String()
}

// SetInnerHTML replaces all children with the parsed markup. The markup is
// parsed in the context of this element and inserted verbatim.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := parseFragment(e.node, markup)
	if err != nil {
		return err
	}
	e.clearChildren()
	for _, node := range nodes {
		e.node.AppendChild(node)
	}
	return nil
}

// Parent returns the parent element, or nil when the element is detached or
// its parent is the document node.
func (e *Element) Parent() *Element {
	parent := e.node.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(parent)
}

// Children returns the direct element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			out = append(out, e.doc.wrap(child))
		}
	}
	return out
}

// LastElementChild returns the last direct element child, or nil.
func (e *Element) LastElementChild() *Element {
	for child := e.node.LastChild; child != nil; child = child.PrevSibling {
		if child.Type == html.ElementNode {
			return e.doc.wrap(child)
		}
	}
	return nil
}

// QuerySelectorAll matches descendants of the element.
func (e *Element) QuerySelectorAll(selector string) ([]*Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, e.doc.wrapAll(sel.MatchAll(child))...)
	}
	return out, nil
}

// Remove detaches the element and its descendants from the tree. Removing a
// detached element is a no-op.
func (e *Element) Remove() {
	if parent := e.node.Parent; parent != nil {
		parent.RemoveChild(e.node)
	}
}

// InsertAdjacentElement moves el to the given position relative to e. An
// element that is already attached elsewhere is detached first.
func (e *Element) InsertAdjacentElement(pos Position, el *Element) error {
	if el == nil {
		return fmt.Errorf("dom: insert element: element is nil")
	}
	if el.doc != e.doc {
		return fmt.Errorf("dom: insert element: element belongs to another document")
	}
	for n := e.node; n != nil; n = n.Parent {
		if n == el.node {
			return fmt.Errorf("dom: insert element: <%s> would contain itself", el.TagName())
		}
	}
	el.Remove()
	return e.insertNodes(pos, []*html.Node{el.node})
}

// InsertAdjacentHTML parses markup and inserts the resulting nodes at the
// given position. It returns the inserted element nodes in order; text and
// comment nodes are inserted but not returned.
func (e *Element) InsertAdjacentHTML(pos Position, markup string) ([]*Element, error) {
	scope := e.node
	if pos == BeforeBegin || pos == AfterEnd {
		scope = e.node.Parent
		if scope == nil || scope.Type != html.ElementNode {
			return nil, fmt.Errorf("dom: insert html %s: element has no parent", pos)
		}
	}
	nodes, err := parseFragment(scope, markup)
	if err != nil {
		return nil, err
	}
	if err := e.insertNodes(pos, nodes); err != nil {
		return nil, err
	}
	var inserted []*Element
	for _, node := range nodes {
		if node.Type == html.ElementNode {
			inserted = append(inserted, e.doc.wrap(node))
		}
	}
	return inserted, nil
}

func (e *Element) insertNodes(pos Position, nodes []*html.Node) error {
	switch pos {
	case BeforeBegin, AfterEnd:
		parent := e.node.Parent
		if parent == nil {
			return fmt.Errorf("dom: insert %s: element has no parent", pos)
		}
		ref := e.node
		if pos == AfterEnd {
			ref = e.node.NextSibling
		}
		for _, node := range nodes {
			parent.InsertBefore(node, ref)
		}
	case AfterBegin:
		ref := e.node.FirstChild
		for _, node := range nodes {
			e.node.InsertBefore(node, ref)
		}
	case BeforeEnd:
		for _, node := range nodes {
			e.node.AppendChild(node)
		}
	default:
		return fmt.Errorf("dom: unknown insert position %q", pos)
	}
	return nil
}

func parseFragment(scope *html.Node, markup string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), scope)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

func (e *Element) clearChildren() {
	for child := e.node.FirstChild; child != nil; {
		next := child.NextSibling
		e.node.RemoveChild(child)
		child = next
	}
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(b, child)
	}
}
