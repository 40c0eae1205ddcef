package dom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const listMarkup = `<!DOCTYPE html><html><body>
<div id="wrap">
  <ul id="list" data-role="entries">
    <li class="item">one</li>
    <li class="item">two</li>
  </ul>
</div>
</body></html>`

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func mustQuery(t *testing.T, doc *Document, selector string) *Element {
	t.Helper()
	el, err := doc.QuerySelector(selector)
	if err != nil {
		t.Fatalf("query %q: %v", selector, err)
	}
	if el == nil {
		t.Fatalf("query %q: no match", selector)
	}
	return el
}

func texts(elements []*Element) []string {
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		out = append(out, strings.TrimSpace(el.Text()))
	}
	return out
}

func TestQuerySelectorReturnsStableWrappers(t *testing.T) {
	doc := mustParse(t, listMarkup)

	first := mustQuery(t, doc, "#list")
	second := mustQuery(t, doc, "ul[data-role=entries]")
	if first != second {
		t.Fatalf("expected the same wrapper for the same node")
	}

	missing, err := doc.QuerySelector("#nope")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unmatched selector, got %v", missing.TagName())
	}
}

func TestQuerySelectorRejectsInvalidSelector(t *testing.T) {
	doc := mustParse(t, listMarkup)
	if _, err := doc.QuerySelectorAll("li[["); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := doc.QuerySelector("  "); err == nil {
		t.Fatalf("expected error for empty selector")
	}
}

func TestChildrenSkipsTextNodes(t *testing.T) {
	doc := mustParse(t, listMarkup)
	list := mustQuery(t, doc, "#list")

	if diff := cmp.Diff([]string{"one", "two"}, texts(list.Children())); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if got := strings.TrimSpace(list.LastElementChild().Text()); got != "two" {
		t.Fatalf("expected last element child %q, got %q", "two", got)
	}
	if list.Parent() != mustQuery(t, doc, "#wrap") {
		t.Fatalf("expected parent to be #wrap")
	}
}

func TestAddClassIsAdditive(t *testing.T) {
	doc := mustParse(t, listMarkup)
	item := mustQuery(t, doc, "li.item")

	item.AddClass("active", "item", "", "active", "wide")

	if diff := cmp.Diff([]string{"item", "active", "wide"}, item.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if !item.HasClass("wide") || item.HasClass("narrow") {
		t.Fatalf("unexpected class membership: %v", item.Classes())
	}
}

func TestAttributesAndData(t *testing.T) {
	doc := mustParse(t, listMarkup)
	list := mustQuery(t, doc, "#list")

	if got, ok := list.Data("role"); !ok || got != "entries" {
		t.Fatalf("expected data-role=entries, got %q (%v)", got, ok)
	}
	list.SetData("entry-index", "2")
	list.SetData("entry-index", "3")
	if got, _ := list.Attr("data-entry-index"); got != "3" {
		t.Fatalf("expected data-entry-index=3, got %q", got)
	}
	list.RemoveAttr("data-role")
	if _, ok := list.Data("role"); ok {
		t.Fatalf("expected data-role to be removed")
	}
}

func TestSetTextDoesNotParseMarkup(t *testing.T) {
	doc := mustParse(t, listMarkup)
	button := doc.CreateElement("BUTTON")

	button.SetText("<b>Add</b>")

	if got := button.OuterHTML(); got != "<button>&lt;b&gt;Add&lt;/b&gt;</button>" {
		t.Fatalf("unexpected markup %q", got)
	}
	if len(button.Children()) != 0 {
		t.Fatalf("expected no element children")
	}
}

func TestSetInnerHTMLParsesMarkup(t *testing.T) {
	doc := mustParse(t, listMarkup)
	button := doc.CreateElement("button")
	button.SetText("old")

	if err := button.SetInnerHTML(`<span class="icon"></span> Remove`); err != nil {
		t.Fatalf("set inner html: %v", err)
	}
	if got := button.InnerHTML(); got != `<span class="icon"></span> Remove` {
		t.Fatalf("unexpected inner html %q", got)
	}
	if got := len(button.Children()); got != 1 {
		t.Fatalf("expected one element child, got %d", got)
	}
}

func TestInsertAdjacentHTMLPositions(t *testing.T) {
	doc := mustParse(t, listMarkup)
	list := mustQuery(t, doc, "#list")
	second := list.LastElementChild()

	inserted, err := list.InsertAdjacentHTML(BeforeEnd, `<li>three</li>text<li>four</li>`)
	if err != nil {
		t.Fatalf("insert beforeend: %v", err)
	}
	if diff := cmp.Diff([]string{"three", "four"}, texts(inserted)); diff != "" {
		t.Fatalf("inserted mismatch (-want +got):\n%s", diff)
	}
	if _, err := list.InsertAdjacentHTML(AfterBegin, `<li>zero</li>`); err != nil {
		t.Fatalf("insert afterbegin: %v", err)
	}
	if _, err := second.InsertAdjacentHTML(BeforeBegin, `<li>one-and-half</li>`); err != nil {
		t.Fatalf("insert beforebegin: %v", err)
	}
	if _, err := second.InsertAdjacentHTML(AfterEnd, `<li>two-and-half</li>`); err != nil {
		t.Fatalf("insert afterend: %v", err)
	}

	want := []string{"zero", "one", "one-and-half", "two", "two-and-half", "three", "four"}
	if diff := cmp.Diff(want, texts(list.Children())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertAdjacentElementMovesAndGuardsCycles(t *testing.T) {
	doc := mustParse(t, listMarkup)
	list := mustQuery(t, doc, "#list")
	wrap := mustQuery(t, doc, "#wrap")
	first := list.Children()[0]

	if err := wrap.InsertAdjacentElement(BeforeEnd, first); err != nil {
		t.Fatalf("move element: %v", err)
	}
	if first.Parent() != wrap {
		t.Fatalf("expected element to move under #wrap")
	}
	if got := len(list.Children()); got != 1 {
		t.Fatalf("expected one remaining item, got %d", got)
	}
	if err := list.InsertAdjacentElement(BeforeEnd, wrap); err == nil {
		t.Fatalf("expected cycle error")
	}
	if err := list.InsertAdjacentElement(Position("middle"), doc.CreateElement("li")); err == nil {
		t.Fatalf("expected unknown position error")
	}
}

func TestRemoveDetachesFromDocument(t *testing.T) {
	doc := mustParse(t, listMarkup)
	item := mustQuery(t, doc, "li.item")
	if !doc.Contains(item) {
		t.Fatalf("expected item to be attached")
	}

	item.Remove()
	item.Remove()

	if doc.Contains(item) {
		t.Fatalf("expected item to be detached")
	}
	if strings.Contains(doc.String(), ">one<") {
		t.Fatalf("expected rendered document to drop removed item")
	}
	if doc.Contains(doc.CreateElement("li")) {
		t.Fatalf("detached element reported as attached")
	}
}
