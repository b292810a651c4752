package binding

// Flag is a tri-state setting: unset flags inherit from the parent node.
type Flag int8

const (
	FlagUnset Flag = iota
	FlagOn
	FlagOff
)

func flagOf(on bool) Flag {
	if on {
		return FlagOn
	}
	return FlagOff
}

// IsSet reports whether the flag carries its own value.
func (f Flag) IsSet() bool { return f != FlagUnset }

// OrElse returns the flag's value, or fallback when unset.
func (f Flag) OrElse(fallback bool) bool {
	switch f {
	case FlagOn:
		return true
	case FlagOff:
		return false
	default:
		return fallback
	}
}

// Options configures a mapping node. It is an immutable value: every With*,
// Append* and Prepend* method returns a modified copy and never touches the
// receiver. The zero value is ready to use.
//
// Options carry two tiers of settings. Inherited settings (i18n, eager
// checking, empty-skipping and the touched checker) flow from parent to child
// through Merge when unset on the child. Local settings (presence mode, label,
// constraint/processor lists, ignore-constraints and the attachment) belong to
// the node that declares them.
type Options struct {
	// inherited
	i18n        Flag
	eagerCheck  Flag
	ignoreEmpty Flag
	touched     TouchedChecker

	// local
	mode              PresenceMode
	label             string
	ignoreConstraints bool
	constraints       []Constraint
	processors        []PreProcessor
	extras            []AnyExtraConstraint
	attachment        any
}

// ── Inherited ────────────────────────────────────────────────────────────────

func (o Options) I18n() Flag        { return o.i18n }
func (o Options) EagerCheck() Flag  { return o.eagerCheck }
func (o Options) IgnoreEmpty() Flag { return o.ignoreEmpty }

// Touched returns the touched checker, or nil when unset.
func (o Options) Touched() TouchedChecker { return o.touched }

func (o Options) WithI18n(on bool) Options {
	o.i18n = flagOf(on)
	return o
}

func (o Options) WithEagerCheck(on bool) Options {
	o.eagerCheck = flagOf(on)
	return o
}

func (o Options) WithIgnoreEmpty(on bool) Options {
	o.ignoreEmpty = flagOf(on)
	return o
}

func (o Options) WithTouched(checker TouchedChecker) Options {
	o.touched = checker
	return o
}

// ── Local ────────────────────────────────────────────────────────────────────

func (o Options) PresenceMode() PresenceMode { return o.mode }

func (o Options) WithPresenceMode(mode PresenceMode) Options {
	o.mode = mode
	return o
}

// Label returns the label override and whether one is set.
func (o Options) Label() (string, bool) { return o.label, o.label != "" }

// WithLabel sets the label override; an empty label clears it.
func (o Options) WithLabel(label string) Options {
	o.label = label
	return o
}

func (o Options) IgnoreConstraints() bool { return o.ignoreConstraints }

func (o Options) WithIgnoreConstraints(on bool) Options {
	o.ignoreConstraints = on
	return o
}

func (o Options) Constraints() []Constraint { return concat(o.constraints, nil) }

func (o Options) AppendConstraints(cs ...Constraint) Options {
	o.constraints = concat(o.constraints, cs)
	return o
}

func (o Options) PrependConstraints(cs ...Constraint) Options {
	o.constraints = concat(cs, o.constraints)
	return o
}

func (o Options) Processors() []PreProcessor { return concat(o.processors, nil) }

func (o Options) AppendProcessors(ps ...PreProcessor) Options {
	o.processors = concat(o.processors, ps)
	return o
}

func (o Options) PrependProcessors(ps ...PreProcessor) Options {
	o.processors = concat(ps, o.processors)
	return o
}

func (o Options) ExtraConstraints() []AnyExtraConstraint { return concat(o.extras, nil) }

func (o Options) AppendExtraConstraints(cs ...AnyExtraConstraint) Options {
	o.extras = concat(o.extras, cs)
	return o
}

func (o Options) PrependExtraConstraints(cs ...AnyExtraConstraint) Options {
	o.extras = concat(cs, o.extras)
	return o
}

// Attachment returns the opaque extension value.
func (o Options) Attachment() any { return o.attachment }

func (o Options) WithAttachment(v any) Options {
	o.attachment = v
	return o
}

// ── Merge ────────────────────────────────────────────────────────────────────

// Merge resolves the inherited settings against parent: a setting on o wins,
// otherwise the parent's value is taken. Local settings of o are kept as is
// and the local settings of parent are ignored.
func (o Options) Merge(parent Options) Options {
	if !o.i18n.IsSet() {
		o.i18n = parent.i18n
	}
	if !o.eagerCheck.IsSet() {
		o.eagerCheck = parent.eagerCheck
	}
	if !o.ignoreEmpty.IsSet() {
		o.ignoreEmpty = parent.ignoreEmpty
	}
	if o.touched == nil {
		o.touched = parent.touched
	}
	return o
}

// concat always allocates, so a returned slice never aliases either input.
func concat[E any](a, b []E) []E {
	out := make([]E, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
