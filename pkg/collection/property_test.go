package collection_test

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/goliatone/go-formcollection/pkg/collection"
	"github.com/goliatone/go-formcollection/pkg/dom"
)

// TestEntryIndexProperties drives random add/remove click sequences and checks
// that the index starts at the pre-rendered entry count, never decreases, and
// that no two instantiated entries share a name.
func TestEntryIndexProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		existing := rapid.IntRange(0, 5).Draw(rt, "existing")
		allowDelete := rapid.Bool().Draw(rt, "allowDelete")

		var rows strings.Builder
		for idx := 0; idx < existing; idx++ {
			fmt.Fprintf(&rows, `<li data-name="pre-%d">pre %d</li>`, idx, idx)
		}
		doc, err := dom.ParseString(`<div><ul id="list" data-prototype="&lt;li data-name=&quot;__name__&quot;&gt;__name__label__&lt;/li&gt;">` + rows.String() + `</ul></div>`)
		if err != nil {
			rt.Fatalf("parse: %v", err)
		}

		m, err := collection.NewFromSelector(doc, "#list",
			collection.WithLogger(discardLogger()),
			collection.WithAllowAdd(true),
			collection.WithAllowDelete(allowDelete),
		)
		if err != nil {
			rt.Fatalf("new manager: %v", err)
		}
		if got := m.EntryIndex(); got != existing {
			rt.Fatalf("expected initial index %d, got %d", existing, got)
		}

		add := m.AddButtons()[0]
		seen := make(map[string]struct{})
		adds := 0
		previous := m.EntryIndex()

		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 30).Draw(rt, "ops")
		for _, op := range ops {
			entries := m.Entries()
			if op == 0 || len(entries) == 0 {
				add.Click()
				adds++
				last := m.Entries()[len(m.Entries())-1]
				name, _ := last.Data("name")
				if _, dup := seen[name]; dup {
					rt.Fatalf("duplicate entry name %q", name)
				}
				seen[name] = struct{}{}
			} else {
				pick := rapid.IntRange(0, len(entries)-1).Draw(rt, "pick")
				if button := entries[pick].LastElementChild(); button != nil {
					button.Click()
				}
			}

			current := m.EntryIndex()
			if current < previous {
				rt.Fatalf("entry index decreased from %d to %d", previous, current)
			}
			previous = current
		}

		if got, want := m.EntryIndex(), existing+adds; got != want {
			rt.Fatalf("expected final index %d, got %d", want, got)
		}
	})
}
