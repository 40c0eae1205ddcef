package collection

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goliatone/go-formcollection/pkg/dom"
)

// Marker classes forming the protocol between markup and behaviour.
const (
	AddActionClass    = "collection-add-action"
	RemoveActionClass = "collection-remove-action"
)

// Tree is the host document surface the manager needs. *dom.Document
// implements it.
type Tree interface {
	QuerySelector(selector string) (*dom.Element, error)
	QuerySelectorAll(selector string) ([]*dom.Element, error)
	CreateElement(tag string) *dom.Element
}

var _ Tree = (*dom.Document)(nil)

// Manager owns the entry lifecycle of one container. It is initialised once
// by its constructor and is driven afterwards by click events dispatched on
// the host tree. A Manager is not safe for concurrent use.
type Manager struct {
	tree       Tree
	container  *dom.Element
	options    Options
	logger     *slog.Logger
	sanitizer  Sanitizer
	persist    bool
	entryIndex int
	addButtons []*dom.Element
}

// NewFromSelector resolves the container with selector and constructs a
// Manager for it.
func NewFromSelector(tree Tree, selector string, opts ...Option) (*Manager, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	container, err := tree.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("collection: resolve container: %w", err)
	}
	if container == nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, selector)
	}
	return New(tree, container, opts...)
}

// New constructs a Manager for container and initialises it: remove buttons
// are attached to existing entries when deletion is allowed, add buttons are
// discovered (or synthesized) and wired when addition is allowed, and removed
// from the document when it is not. Add buttons are looked up across the whole
// tree, not just around container.
func New(tree Tree, container *dom.Element, opts ...Option) (*Manager, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	if container == nil {
		return nil, ErrContainerNotFound
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default().With("component", "collection")
	}

	options, err := resolveOptions(container, cfg.options, logger)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		tree:       tree,
		container:  container,
		options:    options,
		logger:     logger,
		sanitizer:  cfg.sanitizer,
		persist:    cfg.persistIndex,
		entryIndex: len(container.Children()),
	}
	m.storeIndex()

	if err := m.init(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) init() error {
	if m.options.AllowDelete {
		for _, entry := range m.container.Children() {
			if err := m.attachRemoveButton(entry); err != nil {
				return err
			}
		}
		m.container.AddEventListener(dom.EventClick, m.handleRemove)
	}

	// Add controls are looked up across the whole document, not only around
	// the container.
	buttons, err := m.tree.QuerySelectorAll("." + AddActionClass)
	if err != nil {
		return fmt.Errorf("collection: discover add buttons: %w", err)
	}

	if !m.options.AllowAdd {
		for _, button := range buttons {
			button.Remove()
		}
		m.logger.Debug("initialised",
			"entries", m.entryIndex, "allow_add", false, "allow_delete", m.options.AllowDelete,
			"removed_add_buttons", len(buttons))
		return nil
	}

	if len(buttons) == 0 {
		parent := m.container.Parent()
		if parent == nil {
			return ErrNoParent
		}
		button, err := m.NewAddButton()
		if err != nil {
			return err
		}
		if err := parent.InsertAdjacentElement(dom.BeforeEnd, button); err != nil {
			return fmt.Errorf("collection: insert add button: %w", err)
		}
		buttons = []*dom.Element{button}
	}
	for _, button := range buttons {
		button.AddEventListener(dom.EventClick, m.handleAdd)
	}
	m.addButtons = buttons

	m.logger.Debug("initialised",
		"entries", m.entryIndex, "allow_add", true, "allow_delete", m.options.AllowDelete,
		"add_buttons", len(buttons))
	return nil
}

// AddEntry instantiates the prototype at the end of the container and appends
// a remove button to the new entry. The remove button is attached whether or
// not deletion is allowed. The entry index advances even when the prototype
// produces no element, in which case ErrEmptyEntry is returned.
func (m *Manager) AddEntry() (*dom.Element, error) {
	index := m.entryIndex
	markup := m.PrototypeEntry()
	if m.sanitizer != nil {
		markup = m.sanitizer.Sanitize(markup)
	}

	inserted, err := m.container.InsertAdjacentHTML(dom.BeforeEnd, markup)
	if err != nil {
		return nil, fmt.Errorf("collection: insert entry %d: %w", index, err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("%w (index %d)", ErrEmptyEntry, index)
	}

	entry := inserted[len(inserted)-1]
	if err := m.attachRemoveButton(entry); err != nil {
		return nil, err
	}
	m.logger.Debug("entry added", "index", index)
	return entry, nil
}

func (m *Manager) handleAdd(ev *dom.Event) {
	ev.PreventDefault()
	if _, err := m.AddEntry(); err != nil {
		m.logger.Error("add entry failed", "error", err)
	}
}

// handleRemove is the single delegated listener on the container. It acts only
// on targets carrying the remove marker class and removes the target's
// immediate parent.
func (m *Manager) handleRemove(ev *dom.Event) {
	target := ev.Target
	if target == nil || !target.HasClass(RemoveActionClass) {
		return
	}
	entry := target.Parent()
	if entry == nil {
		return
	}
	entry.Remove()
	m.logger.Debug("entry removed", "tag", entry.TagName())
}

func (m *Manager) attachRemoveButton(entry *dom.Element) error {
	button, err := m.NewRemoveButton()
	if err != nil {
		return err
	}
	if err := entry.InsertAdjacentElement(dom.BeforeEnd, button); err != nil {
		return fmt.Errorf("collection: attach remove button: %w", err)
	}
	return nil
}

func (m *Manager) storeIndex() {
	if !m.persist {
		return
	}
	m.container.SetData(DataEntryIndex, strconv.Itoa(m.entryIndex))
}

// EntryIndex returns the index the next instantiated entry will use.
func (m *Manager) EntryIndex() int {
	return m.entryIndex
}

// Container returns the managed container element.
func (m *Manager) Container() *dom.Element {
	return m.container
}

// Entries returns the container's current direct element children.
func (m *Manager) Entries() []*dom.Element {
	return m.container.Children()
}

// AddButtons returns the add controls wired at initialisation. It is empty
// when addition is disabled.
func (m *Manager) AddButtons() []*dom.Element {
	return append([]*dom.Element(nil), m.addButtons...)
}

// Options returns the resolved configuration snapshot.
func (m *Manager) Options() Options {
	return m.options.clone()
}

// LabelToken returns the resolved label placeholder.
func (m *Manager) LabelToken() string {
	return m.options.PrototypeLabelToken
}

// NameToken returns the resolved name placeholder.
func (m *Manager) NameToken() string {
	return m.options.PrototypeToken
}
