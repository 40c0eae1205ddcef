package collection

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcollection/pkg/dom"
)

// Reserved attribute names handled specially by ApplyAttributes.
const (
	AttrClass = "class"
	AttrText  = "text"
	AttrHTML  = "html"
	AttrType  = "type"
)

// Attribute is a single name/value pair.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute mapping. Order matters: pairs are applied
// first to last, so a later "html" overrides an earlier "text".
type Attributes []Attribute

// AttributesFromMap converts an unordered map, sorting keys for a
// deterministic application order.
func AttributesFromMap(values map[string]string) Attributes {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	out := make(Attributes, 0, len(keys))
	for _, key := range keys {
		out = append(out, Attribute{Name: key, Value: values[key]})
	}
	return out
}

// ParseAttributes decodes a mapping written as a JSON object or YAML mapping,
// preserving key order. Blank input yields no attributes.
func ParseAttributes(raw string) (Attributes, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return nil, fmt.Errorf("collection: parse attributes: %w", err)
	}
	var attrs Attributes
	if err := attrs.UnmarshalYAML(&node); err != nil {
		return nil, err
	}
	return attrs, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order. Scalar
// values of any type are kept in their literal form; null becomes "".
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			*a = nil
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*a = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("collection: attributes must be a mapping (line %d)", node.Line)
	}

	out := make(Attributes, 0, len(node.Content)/2)
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key, value := node.Content[idx], node.Content[idx+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("collection: attribute %q must be a scalar (line %d)", key.Value, value.Line)
		}
		literal := value.Value
		if value.Tag == "!!null" {
			literal = ""
		}
		out = append(out, Attribute{Name: key.Value, Value: literal})
	}
	*a = out
	return nil
}

// Get returns the value of the last pair with the given name.
func (a Attributes) Get(name string) (string, bool) {
	for idx := len(a) - 1; idx >= 0; idx-- {
		if a[idx].Name == name {
			return a[idx].Value, true
		}
	}
	return "", false
}

// Has reports whether any pair uses the name, regardless of its value.
func (a Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	return slices.Clone(a)
}

// ApplyAttributes applies attrs to el in order. "class" adds each
// whitespace-separated token to the class list without touching existing
// classes, "text" sets the text content verbatim, "html" replaces the inner
// markup verbatim (the caller is responsible for sanitising it) and every
// other name is assigned as an attribute. Names are not validated.
func ApplyAttributes(el *dom.Element, attrs Attributes) error {
	for _, attr := range attrs {
		switch attr.Name {
		case AttrClass:
			el.AddClass(strings.Fields(attr.Value)...)
		case AttrText:
			el.SetText(attr.Value)
		case AttrHTML:
			if err := el.SetInnerHTML(attr.Value); err != nil {
				return fmt.Errorf("collection: apply html attribute: %w", err)
			}
		default:
			el.SetAttr(attr.Name, attr.Value)
		}
	}
	return nil
}
