package binding

import (
	"fmt"
	"strings"
)

// Messages looks up a message template by key. A missing key is a valid
// outcome; callers fall back to the built-in English table.
type Messages interface {
	Get(key string) (string, bool)
}

// MessagesFunc adapts a plain function to Messages.
type MessagesFunc func(key string) (string, bool)

func (f MessagesFunc) Get(key string) (string, bool) { return f(key) }

// MessageMap is a static Messages table.
type MessageMap map[string]string

func (m MessageMap) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// DefaultMessages returns the built-in English templates.
func DefaultMessages() Messages { return defaultMessages }

// DefaultTemplates returns a copy of the built-in English templates.
func DefaultTemplates() map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for k, v := range defaultMessages {
		out[k] = v
	}
	return out
}

var defaultMessages = MessageMap{
	"error.required":      "The %s field is required.",
	"error.number":        "The %s must be a number.",
	"error.integer":       "The %s must be an integer.",
	"error.boolean":       "The %s field must be true or false.",
	"error.uuid":          "The %s must be a valid UUID.",
	"error.date":          "The %s does not match the format %s.",
	"error.duration":      "The %s must be a valid duration.",
	"error.email":         "The %s must be a valid email address.",
	"error.url":           "The %s must be a valid URL.",
	"error.minlength":     "The %s must be at least %d characters.",
	"error.maxlength":     "The %s may not be greater than %d characters.",
	"error.length":        "The %s must be %d characters.",
	"error.lengthbetween": "The %s must be between %d and %d characters.",
	"error.oneof":         "The selected %s is invalid.",
	"error.noneof":        "The selected %s is invalid.",
	"error.confirmed":     "The %s confirmation does not match.",
	"error.same":          "The %s and %s must match.",
	"error.different":     "The %s and %s must be different.",
	"error.alpha":         "The %s may only contain letters.",
	"error.alphanum":      "The %s may only contain letters and numbers.",
	"error.alphadash":     "The %s may only contain letters, numbers, dashes and underscores.",
	"error.pattern":       "The %s format is invalid.",
	"error.patternnot":    "The %s must not match %s.",
	"error.gt":            "The %s must be greater than %s.",
	"error.gte":           "The %s must be greater than or equal to %s.",
	"error.lt":            "The %s must be less than %s.",
	"error.lte":           "The %s must be less than or equal to %s.",
	"error.min":           "The %s must be at least %v.",
	"error.max":           "The %s may not be greater than %v.",
	"error.minsize":       "The %s must have at least %d items.",
	"error.maxsize":       "The %s may not have more than %d items.",
	"error.distinct":      "The %s field has a duplicate value.",
	"error.index":         "The %s has an invalid index %s.",
}

// Message renders the template for key with args. Lookup goes to messages
// first, then the English defaults; an unknown key renders as the key itself.
func Message(messages Messages, key string, args ...any) string {
	tmpl, ok := lookup(messages, key)
	if !ok {
		tmpl, ok = defaultMessages[key]
	}
	if !ok {
		return key
	}
	return fmt.Sprintf(tmpl, args...)
}

func lookup(messages Messages, key string) (string, bool) {
	if messages == nil {
		return "", false
	}
	return messages.Get(key)
}

// LabelFor returns the human label of the node at path: the label override
// (translated through messages when i18n is on), else the path leaf.
func LabelFor(path string, messages Messages, options Options) string {
	if label, ok := options.Label(); ok {
		if options.I18n().OrElse(false) {
			if text, found := lookup(messages, label); found {
				return text
			}
		}
		return label
	}
	parent, leaf, isIndex := SplitName(path)
	if isIndex {
		_, owner, _ := SplitName(parent)
		return owner + "[" + leaf + "]"
	}
	return strings.TrimSpace(leaf)
}
