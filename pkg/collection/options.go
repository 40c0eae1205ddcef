package collection

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcollection/pkg/dom"
)

// Default placeholder tokens emitted by form libraries in prototype markup.
const (
	DefaultLabelToken = "__name__label__"
	DefaultNameToken  = "__name__"
)

// Container data-* keys, given without the "data-" prefix.
const (
	DataEntryIndex          = "entry-index"
	DataPrototype           = "prototype"
	DataPrototypeLabelToken = "prototype-label-token"
	DataPrototypeToken      = "prototype-token"
	DataAllowAdd            = "allow-add"
	DataAllowDelete         = "allow-delete"
	DataAddButtonAttrs      = "add-button-attrs"
	DataRemoveButtonAttrs   = "remove-button-attrs"

	// Names emitted by older markup for the two tokens.
	dataPrototypeLabelName = "prototype-label-name"
	dataPrototypeName      = "prototype-name"
)

// Options is the caller-supplied configuration. Values found on the container
// element take precedence over these, which in turn take precedence over the
// package defaults.
type Options struct {
	AllowAdd            bool       `yaml:"allow_add"`
	AllowDelete         bool       `yaml:"allow_delete"`
	AddButtonAttrs      Attributes `yaml:"add_button_attrs"`
	RemoveButtonAttrs   Attributes `yaml:"remove_button_attrs"`
	PrototypeLabelToken string     `yaml:"prototype_label_token"`
	PrototypeToken      string     `yaml:"prototype_token"`
}

// DecodeOptions reads Options from a YAML (or JSON) document. Unknown keys are
// rejected. An empty document yields zero Options.
func DecodeOptions(r io.Reader) (Options, error) {
	var opts Options
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil {
		if errors.Is(err, io.EOF) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("collection: decode options: %w", err)
	}
	return opts, nil
}

func (o Options) clone() Options {
	o.AddButtonAttrs = o.AddButtonAttrs.Clone()
	o.RemoveButtonAttrs = o.RemoveButtonAttrs.Clone()
	return o
}

// Sanitizer cleans markup before it is inserted. *bluemonday.Policy satisfies
// it.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Option configures a Manager before construction.
type Option func(*config)

type config struct {
	options      Options
	logger       *slog.Logger
	sanitizer    Sanitizer
	persistIndex bool
}

func defaultConfig() config {
	return config{persistIndex: true}
}

// WithOptions replaces the caller-supplied options wholesale.
func WithOptions(opts Options) Option {
	return func(cfg *config) {
		cfg.options = opts.clone()
	}
}

// WithAllowAdd enables or disables adding entries.
func WithAllowAdd(allow bool) Option {
	return func(cfg *config) {
		cfg.options.AllowAdd = allow
	}
}

// WithAllowDelete enables or disables removing entries.
func WithAllowDelete(allow bool) Option {
	return func(cfg *config) {
		cfg.options.AllowDelete = allow
	}
}

// WithAddButtonAttrs sets the attributes layered onto a synthesized add
// button.
func WithAddButtonAttrs(attrs Attributes) Option {
	return func(cfg *config) {
		cfg.options.AddButtonAttrs = attrs.Clone()
	}
}

// WithRemoveButtonAttrs sets the attributes layered onto every remove button.
func WithRemoveButtonAttrs(attrs Attributes) Option {
	return func(cfg *config) {
		cfg.options.RemoveButtonAttrs = attrs.Clone()
	}
}

// WithPrototypeLabelToken overrides the label placeholder.
func WithPrototypeLabelToken(token string) Option {
	return func(cfg *config) {
		cfg.options.PrototypeLabelToken = token
	}
}

// WithPrototypeToken overrides the name placeholder.
func WithPrototypeToken(token string) Option {
	return func(cfg *config) {
		cfg.options.PrototypeToken = token
	}
}

// WithLogger routes lifecycle logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSanitizer cleans instantiated entry markup and "html" button attributes
// before insertion. Without it markup is inserted verbatim.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(cfg *config) {
		cfg.sanitizer = sanitizer
	}
}

// WithIndexPersistence controls whether the entry index is mirrored onto the
// container as data-entry-index. Enabled by default.
func WithIndexPersistence(enabled bool) Option {
	return func(cfg *config) {
		cfg.persistIndex = enabled
	}
}

// resolveOptions merges container data-* configuration over the caller
// options and fills token defaults.
func resolveOptions(container *dom.Element, caller Options, logger *slog.Logger) (Options, error) {
	resolved := caller.clone()

	if allow, ok := dataFlag(container, DataAllowAdd, logger); ok {
		resolved.AllowAdd = allow
	}
	if allow, ok := dataFlag(container, DataAllowDelete, logger); ok {
		resolved.AllowDelete = allow
	}

	if raw, ok := dataValue(container, DataAddButtonAttrs); ok {
		attrs, err := ParseAttributes(raw)
		if err != nil {
			return Options{}, fmt.Errorf("collection: data-%s: %w", DataAddButtonAttrs, err)
		}
		resolved.AddButtonAttrs = attrs
	}
	if raw, ok := dataValue(container, DataRemoveButtonAttrs); ok {
		attrs, err := ParseAttributes(raw)
		if err != nil {
			return Options{}, fmt.Errorf("collection: data-%s: %w", DataRemoveButtonAttrs, err)
		}
		resolved.RemoveButtonAttrs = attrs
	}

	resolved.PrototypeLabelToken = firstNonEmpty(
		dataString(container, DataPrototypeLabelToken),
		dataString(container, dataPrototypeLabelName),
		caller.PrototypeLabelToken,
		DefaultLabelToken,
	)
	resolved.PrototypeToken = firstNonEmpty(
		dataString(container, DataPrototypeToken),
		dataString(container, dataPrototypeName),
		caller.PrototypeToken,
		DefaultNameToken,
	)
	return resolved, nil
}

// dataValue returns a data-* value only when it is present and not blank.
func dataValue(el *dom.Element, key string) (string, bool) {
	value, ok := el.Data(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func dataString(el *dom.Element, key string) string {
	value, _ := dataValue(el, key)
	return value
}

// dataFlag parses a boolean data-* value. Blank values count as absent;
// unrecognised non-blank values count as true.
func dataFlag(el *dom.Element, key string, logger *slog.Logger) (bool, bool) {
	raw, ok := dataValue(el, key)
	if !ok {
		return false, false
	}
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "yes", "on":
		return true, true
	case "no", "off":
		return false, true
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, true
	}
	logger.Warn("unrecognised boolean, treating as true", "key", "data-"+key, "value", raw)
	return true, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
