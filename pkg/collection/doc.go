// Package collection manages a repeatable group of form entries inside a
// container element. A Manager allocates entry indexes, instantiates new
// entries from the container's data-prototype template, provisions add and
// remove buttons and wires their click handling.
//
// The markup protocol is driven by two marker classes. Any element in the
// document carrying collection-add-action is treated as an add control (the
// lookup is document-wide, not scoped to the container) and any click target
// carrying collection-remove-action inside the container removes its immediate
// parent element. Per-container configuration is read from data-* attributes
// and overrides the options supplied by the caller:
//
//	<div id="tags"
//	     data-prototype="&lt;div&gt;&lt;label&gt;__name__label__&lt;/label&gt;&lt;input name=&quot;tags[__name__]&quot;&gt;&lt;/div&gt;"
//	     data-allow-add="true"
//	     data-allow-delete="true"
//	     data-remove-button-attrs='{"class": "btn btn-link", "text": "Delete"}'>
//	</div>
//
// Each instantiated entry replaces the label token with "!New! <index>" and
// the name token with the index itself. The index starts at the number of
// entries present at construction and only ever grows, so every entry created
// by a Manager carries a unique name even after deletions.
package collection
