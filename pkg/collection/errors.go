package collection

import "errors"

var (
	// ErrContainerNotFound reports a selector that resolved to nothing.
	ErrContainerNotFound = errors.New("collection: container not found")
	// ErrNoParent reports a container without a parent element when an add
	// button has to be synthesized next to it.
	ErrNoParent = errors.New("collection: container has no parent element")
	// ErrEmptyEntry reports a prototype that produced no element to attach a
	// remove button to.
	ErrEmptyEntry = errors.New("collection: prototype produced no entry element")
	// ErrNilTree reports a missing host tree.
	ErrNilTree = errors.New("collection: tree is nil")
)
