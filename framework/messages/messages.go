package messages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/km-arc/go-formbind/framework/binding"
)

// DefaultLocale is served from the built-in English templates.
const DefaultLocale = "en"

var (
	// ErrUnknownLocale is returned when no translation file exists for a locale.
	ErrUnknownLocale = errors.New("messages: unknown locale")
	// ErrInvalidEntry is returned when a translation file holds a value that is
	// neither a string nor a nested table.
	ErrInvalidEntry = errors.New("messages: invalid entry")
)

//go:embed locales/*.yaml
var builtin embed.FS

// Bundle is a translation table for one locale. Keys are dotted, e.g.
// "error.required"; lookups that miss fall back to the English templates.
type Bundle struct {
	locale  string
	entries map[string]string
}

var _ binding.Messages = (*Bundle)(nil)

// New returns a bundle holding entries for locale.
func New(locale string, entries map[string]string) *Bundle {
	b := &Bundle{locale: locale, entries: make(map[string]string, len(entries))}
	maps.Copy(b.entries, entries)
	return b
}

// Load returns the built-in bundle for locale.
func Load(locale string) (*Bundle, error) {
	return LoadFS(builtin, "locales", locale)
}

// LoadDir reads <dir>/<locale>.yaml. The English locale needs no file.
func LoadDir(dir, locale string) (*Bundle, error) {
	return LoadFS(os.DirFS(dir), ".", locale)
}

// LoadFS reads <dir>/<locale>.yaml from fsys.
func LoadFS(fsys fs.FS, dir, locale string) (*Bundle, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == "" {
		locale = DefaultLocale
	}

	data, err := fs.ReadFile(fsys, path.Join(dir, locale+".yaml"))
	if errors.Is(err, fs.ErrNotExist) && locale == DefaultLocale {
		return New(DefaultLocale, nil), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	if err != nil {
		return nil, fmt.Errorf("reading locale %q: %w", locale, err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return New(locale, entries), nil
}

// Locales lists the built-in locales, English included.
func Locales() []string {
	out := []string{DefaultLocale}
	files, _ := fs.Glob(builtin, "locales/*.yaml")
	for _, f := range files {
		out = append(out, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	slices.Sort(out)
	return out
}

// Parse reads a YAML translation file. Nested tables are joined with dots:
//
//	error:
//	  required: "..."   →   error.required
func Parse(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}
	out := make(map[string]string)
	if err := flatten("", doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, v any, out map[string]string) error {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		out[prefix] = t
		return nil
	case map[string]any:
		for k, val := range t {
			if err := flatten(join(prefix, k), val, out); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		for k, val := range t {
			if err := flatten(join(prefix, fmt.Sprint(k)), val, out); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s holds %T", ErrInvalidEntry, prefix, v)
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func (b *Bundle) Locale() string { return b.locale }

// Get returns the template for key, falling back to the English default.
func (b *Bundle) Get(key string) (string, bool) {
	if v, ok := b.entries[key]; ok {
		return v, true
	}
	return binding.DefaultMessages().Get(key)
}

// Has reports whether the bundle itself translates key.
func (b *Bundle) Has(key string) bool {
	_, ok := b.entries[key]
	return ok
}

// Len returns the number of translated keys.
func (b *Bundle) Len() int { return len(b.entries) }

// Merge returns a bundle where entries of other override those of b.
func (b *Bundle) Merge(other *Bundle) *Bundle {
	out := New(b.locale, b.entries)
	if other != nil {
		maps.Copy(out.entries, other.entries)
	}
	return out
}
