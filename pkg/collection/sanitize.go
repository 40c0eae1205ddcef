package collection

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// FormMarkupPolicy returns a shared bluemonday policy for entry prototypes:
// user-generated-content rules plus form controls, their naming attributes,
// classes and data-* attributes. Scripts and event handler attributes are
// stripped. Pass it to WithSanitizer.
func FormMarkupPolicy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements(
			"div", "span", "p", "form", "fieldset", "legend", "label", "input", "select", "option",
			"optgroup", "textarea", "button", "output", "datalist",
		)
		policy.AllowAttrs("class").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs(
			"name", "type", "value", "placeholder", "required", "disabled",
			"readonly", "checked", "multiple", "min", "max", "step", "minlength",
			"maxlength", "pattern", "autocomplete", "size", "form",
		).OnElements("input")
		policy.AllowAttrs(
			"name", "required", "disabled", "multiple", "size", "autocomplete", "form",
		).OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		policy.AllowAttrs("label", "disabled").OnElements("optgroup")
		policy.AllowAttrs(
			"name", "rows", "cols", "placeholder", "required", "disabled",
			"readonly", "minlength", "maxlength", "wrap", "form",
		).OnElements("textarea")
		policy.AllowAttrs("name", "type", "value", "disabled", "form").OnElements("button")
		policy.AllowAttrs("for").OnElements("label", "output")
		policy.AllowAttrs("name", "disabled", "form").OnElements("fieldset")

		formPolicy = policy
	})
	return formPolicy
}
