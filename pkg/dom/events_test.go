package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatchBubblesFromTarget(t *testing.T) {
	doc := mustParse(t, listMarkup)
	wrap := mustQuery(t, doc, "#wrap")
	list := mustQuery(t, doc, "#list")
	item := mustQuery(t, doc, "li.item")

	var calls []string
	record := func(name string) Listener {
		return func(ev *Event) {
			if ev.Target != item {
				t.Fatalf("%s: unexpected target <%s>", name, ev.Target.TagName())
			}
			calls = append(calls, name+":"+ev.CurrentTarget.TagName())
		}
	}
	wrap.AddEventListener(EventClick, record("wrap"))
	list.AddEventListener(EventClick, record("list"))
	item.AddEventListener(EventClick, record("item"))
	list.AddEventListener("input", record("ignored"))

	ev := item.Click()

	if diff := cmp.Diff([]string{"item:li", "list:ul", "wrap:div"}, calls); diff != "" {
		t.Fatalf("dispatch order mismatch (-want +got):\n%s", diff)
	}
	if ev.DefaultPrevented() {
		t.Fatalf("default should not be prevented")
	}
	if ev.CurrentTarget != nil {
		t.Fatalf("expected current target to be reset after dispatch")
	}
}

func TestDispatchStopPropagationAndPreventDefault(t *testing.T) {
	doc := mustParse(t, listMarkup)
	wrap := mustQuery(t, doc, "#wrap")
	list := mustQuery(t, doc, "#list")
	item := mustQuery(t, doc, "li.item")

	reachedWrap := false
	list.AddEventListener(EventClick, func(ev *Event) {
		ev.PreventDefault()
		ev.StopPropagation()
	})
	wrap.AddEventListener(EventClick, func(*Event) { reachedWrap = true })

	ev := item.Click()

	if !ev.DefaultPrevented() {
		t.Fatalf("expected default to be prevented")
	}
	if reachedWrap {
		t.Fatalf("expected propagation to stop at #list")
	}
}

func TestAddEventListenerUnsubscribe(t *testing.T) {
	doc := mustParse(t, listMarkup)
	item := mustQuery(t, doc, "li.item")

	count := 0
	off := item.AddEventListener(EventClick, func(*Event) { count++ })
	item.AddEventListener(EventClick, nil)()

	item.Click()
	off()
	off()
	item.Click()

	if count != 1 {
		t.Fatalf("expected one delivery, got %d", count)
	}
}

func TestDispatchSurvivesRemovalDuringListener(t *testing.T) {
	doc := mustParse(t, listMarkup)
	list := mustQuery(t, doc, "#list")
	item := mustQuery(t, doc, "li.item")

	wrapCalls := 0
	list.AddEventListener(EventClick, func(ev *Event) {
		ev.Target.Remove()
	})
	mustQuery(t, doc, "#wrap").AddEventListener(EventClick, func(*Event) { wrapCalls++ })

	item.Click()

	if doc.Contains(item) {
		t.Fatalf("expected listener to remove the target")
	}
	if wrapCalls != 1 {
		t.Fatalf("expected bubbling to continue along the captured path, got %d", wrapCalls)
	}
}
