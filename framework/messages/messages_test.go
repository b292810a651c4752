package messages_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formbind/framework/binding"
	"github.com/km-arc/go-formbind/framework/messages"
)

func TestLoad_BuiltinLocales(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"de", "en", "fr"}, messages.Locales())

	for _, locale := range []string{"de", "fr"} {
		locale := locale
		t.Run(locale, func(t *testing.T) {
			t.Parallel()

			b, err := messages.Load(locale)
			require.NoError(t, err)
			assert.Equal(t, locale, b.Locale())

			// Every built-in template is translated.
			for key := range binding.DefaultTemplates() {
				assert.True(t, b.Has(key), "%s misses %s", locale, key)
			}
		})
	}
}

func TestLoad_English(t *testing.T) {
	t.Parallel()

	b, err := messages.Load("EN ")
	require.NoError(t, err)
	assert.Zero(t, b.Len())

	tmpl, ok := b.Get("error.required")
	require.True(t, ok)
	assert.Equal(t, "The %s field is required.", tmpl)
}

func TestLoad_UnknownLocale(t *testing.T) {
	t.Parallel()

	_, err := messages.Load("xx")
	assert.ErrorIs(t, err, messages.ErrUnknownLocale)
}

func TestBundle_FallsBackToEnglish(t *testing.T) {
	t.Parallel()

	b := messages.New("de", map[string]string{"error.required": "%s fehlt."})
	assert.Equal(t, "email fehlt.", binding.Message(b, "error.required", "email"))
	assert.Equal(t, "The age must be a number.", binding.Message(b, "error.number", "age"))

	_, ok := b.Get("label.unknown")
	assert.False(t, ok)
}

func TestBundle_Merge(t *testing.T) {
	t.Parallel()

	base := messages.New("de", map[string]string{"a": "1", "b": "2"})
	merged := base.Merge(messages.New("de", map[string]string{"b": "3"}))

	v, _ := merged.Get("b")
	assert.Equal(t, "3", v)
	v, _ = base.Get("b")
	assert.Equal(t, "2", v)
	assert.Equal(t, 2, messages.New("en", nil).Merge(base).Len())
}

func TestParse(t *testing.T) {
	t.Parallel()

	entries, err := messages.Parse([]byte("error:\n  required: \"%s!\"\nlabel:\n  user:\n    name: Name\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"error.required":  "%s!",
		"label.user.name": "Name",
	}, entries)

	_, err = messages.Parse([]byte("error:\n  - a\n  - b\n"))
	assert.ErrorIs(t, err, messages.ErrInvalidEntry)

	_, err = messages.Parse([]byte("error: [unclosed"))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte("error:\n  required: \"%s is verplicht.\"\n"), 0o600))

	b, err := messages.LoadDir(dir, "nl")
	require.NoError(t, err)
	assert.Equal(t, "naam is verplicht.", binding.Message(b, "error.required", "naam"))

	_, err = messages.LoadDir(dir, "de")
	assert.ErrorIs(t, err, messages.ErrUnknownLocale)
}

func TestBundle_TranslatesLabels(t *testing.T) {
	t.Parallel()

	b, err := messages.Load("de")
	require.NoError(t, err)

	m := binding.Text().Label("label.email").Constraint(binding.Required())
	errs, err := m.Validate("email", map[string]string{}, b, binding.Options{}.WithI18n(true))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "Das Feld E-Mail-Adresse muss ausgefüllt werden.", errs[0].Message)
}
