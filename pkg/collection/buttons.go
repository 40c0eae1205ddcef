package collection

import "github.com/goliatone/go-formcollection/pkg/dom"

// Default button labels.
const (
	DefaultAddButtonLabel    = "Add"
	DefaultRemoveButtonLabel = "Remove"
)

// NewAddButton builds a detached add button: default label, add marker class,
// then the configured add button attributes layered on top.
func (m *Manager) NewAddButton() (*dom.Element, error) {
	button := m.tree.CreateElement("button")
	button.SetText(DefaultAddButtonLabel)
	button.AddClass(AddActionClass)
	if err := m.applyAttributes(button, m.options.AddButtonAttrs); err != nil {
		return nil, err
	}
	return button, nil
}

// NewRemoveButton builds a detached remove button. type="button" is set unless
// the remove attributes carry a type, and the default label is set unless they
// carry "text" or "html" (even with an empty value).
func (m *Manager) NewRemoveButton() (*dom.Element, error) {
	attrs := m.options.RemoveButtonAttrs
	button := m.tree.CreateElement("button")
	if !attrs.Has(AttrType) {
		button.SetAttr(AttrType, "button")
	}
	if !attrs.Has(AttrText) && !attrs.Has(AttrHTML) {
		button.SetText(DefaultRemoveButtonLabel)
	}
	button.AddClass(RemoveActionClass)
	if err := m.applyAttributes(button, attrs); err != nil {
		return nil, err
	}
	return button, nil
}

// applyAttributes routes "html" values through the sanitizer when one is
// configured.
func (m *Manager) applyAttributes(el *dom.Element, attrs Attributes) error {
	if m.sanitizer == nil || !attrs.Has(AttrHTML) {
		return ApplyAttributes(el, attrs)
	}
	cleaned := attrs.Clone()
	for idx := range cleaned {
		if cleaned[idx].Name == AttrHTML {
			cleaned[idx].Value = m.sanitizer.Sanitize(cleaned[idx].Value)
		}
	}
	return ApplyAttributes(el, cleaned)
}
