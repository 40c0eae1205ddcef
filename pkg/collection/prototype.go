package collection

import (
	"strconv"
	"strings"
)

// NewEntryLabel is the label substituted for the label token.
func NewEntryLabel(index int) string {
	return "!New! " + strconv.Itoa(index)
}

// Substitute replaces every literal occurrence of labelToken with the entry
// label and then every literal occurrence of nameToken with the decimal index.
// The passes run in that order over the same string; overlapping tokens are
// not disambiguated. Empty tokens are skipped.
func Substitute(template, labelToken, nameToken string, index int) string {
	out := template
	if labelToken != "" {
		out = strings.ReplaceAll(out, labelToken, NewEntryLabel(index))
	}
	if nameToken != "" {
		out = strings.ReplaceAll(out, nameToken, strconv.Itoa(index))
	}
	return out
}

// PrototypeEntry renders the container's data-prototype for the current entry
// index, then advances the index. A missing prototype renders as empty markup.
func (m *Manager) PrototypeEntry() string {
	template, ok := m.container.Data(DataPrototype)
	if !ok {
		m.logger.Warn("container has no data-prototype", "index", m.entryIndex)
	}

	markup := Substitute(template, m.options.PrototypeLabelToken, m.options.PrototypeToken, m.entryIndex)

	m.entryIndex++
	m.storeIndex()
	return markup
}
