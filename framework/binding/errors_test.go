package binding_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-formbind/framework/binding"
)

var sample = binding.Errors{
	{Path: "email", Message: "The email field is required."},
	{Path: "user.tags[0]", Message: "bad tag"},
	{Path: "email", Message: "The email must be a valid email address."},
	{Path: "", Message: "form rejected"},
}

func TestErrors_Lookup(t *testing.T) {
	t.Parallel()

	assert.True(t, sample.Has())
	assert.False(t, binding.Errors(nil).Has())
	assert.Equal(t, "The email field is required.", sample.First("email"))
	assert.Equal(t, "", sample.First("missing"))
	assert.Len(t, sample.For("email"), 2)
	assert.Equal(t, []string{"email", "user.tags[0]", ""}, sample.Paths())
}

func TestErrors_Fold(t *testing.T) {
	t.Parallel()

	want := map[string][]string{
		"email": {
			"The email field is required.",
			"The email must be a valid email address.",
		},
		"user.tags[0]": {"bad tag"},
		"":             {"form rejected"},
	}
	if diff := cmp.Diff(want, sample.Fold()); diff != "" {
		t.Errorf("fold mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors_Tree(t *testing.T) {
	t.Parallel()

	want := map[string]any{
		"_errors": []string{"form rejected"},
		"email": map[string]any{
			"_errors": []string{
				"The email field is required.",
				"The email must be a valid email address.",
			},
		},
		"user": map[string]any{
			"tags": map[string]any{
				"0": map[string]any{"_errors": []string{"bad tag"}},
			},
		},
	}
	if diff := cmp.Diff(want, sample.Tree()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors_Err(t *testing.T) {
	t.Parallel()

	assert.NoError(t, binding.Errors(nil).Err())

	err := binding.Errors{{Path: "a", Message: "x"}, {Message: "y"}}.Err()
	var verr *binding.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 2)
	assert.Equal(t, "validation failed: a: x; y", err.Error())
}

func TestMalformedInputError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected EOF")
	err := &binding.MalformedInputError{Path: "doc", Format: "json", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `binding: malformed json input at "doc": unexpected EOF`, err.Error())
}

func TestMessage_Fallbacks(t *testing.T) {
	t.Parallel()

	custom := binding.MessageMap{"error.required": "%s wird benötigt."}
	assert.Equal(t, "x wird benötigt.", binding.Message(custom, "error.required", "x"))
	assert.Equal(t, "The x must be a number.", binding.Message(custom, "error.number", "x"))
	assert.Equal(t, "error.unknown", binding.Message(custom, "error.unknown", "x"))
	assert.Equal(t, "The x must be a number.", binding.Message(nil, "error.number", "x"))

	templates := binding.DefaultTemplates()
	templates["error.number"] = "changed"
	assert.Equal(t, "The x must be a number.", binding.Message(binding.DefaultMessages(), "error.number", "x"))
}
