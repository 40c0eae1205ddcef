// Package dom provides the host tree the collection manager operates on: an
// HTML element tree backed by golang.org/x/net/html with CSS selector queries
// (cascadia), attribute and class mutation, markup insertion relative to an
// element, and synchronous click dispatch that bubbles from the target through
// its ancestors.
//
// A Document is not safe for concurrent use. Callers serialise access the way
// a browser event loop does: every listener runs to completion before the next
// event is dispatched.
package dom
