package binding

import "fmt"

// NamedNode pairs a child mapping with its field name.
type NamedNode struct {
	Name string
	Node Node
}

// Named declares a group child.
func Named(name string, node Node) NamedNode {
	return NamedNode{Name: name, Node: node}
}

type group struct {
	options Options
	fields  []NamedNode
}

// Group builds a compound mapping converting to a *BoundTree. Children are
// validated and converted at path.name in declaration order. Group panics on
// an empty, nil or duplicate child, which is a bug in the mapping definition.
//
//	signup := binding.Group(
//	    binding.Named("email", binding.Text().Constraint(binding.Required(), binding.Email())),
//	    binding.Named("age", binding.Int()),
//	)
func Group(fields ...NamedNode) Mapping[*BoundTree] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			panic("binding: group field with empty name")
		}
		if f.Node == nil {
			panic(fmt.Sprintf("binding: group field %q has no mapping", f.Name))
		}
		if _, dup := seen[f.Name]; dup {
			panic(fmt.Sprintf("binding: duplicate group field %q", f.Name))
		}
		seen[f.Name] = struct{}{}
	}
	return group{
		options: Options{}.WithPresenceMode(Multiple),
		fields:  concat(fields, nil),
	}
}

// Fields returns the declared children of a group mapping, or nil when m is
// not a group.
func Fields(m Node) []NamedNode {
	if g, ok := m.(group); ok {
		return concat(g.fields, nil)
	}
	return nil
}

// present reports whether the group has input. The root path always has.
func (g group) present(path string, data map[string]string) bool {
	return path == "" || !IsEmptyInput(path, data, Multiple)
}

func (g group) Options() Options { return g.options }

func (g group) Validate(path string, data map[string]string, messages Messages, parent Options) (Errors, error) {
	return validateNode(path, data, messages, g.options.Merge(parent), g.structural, true,
		func(p string, d map[string]string) (any, error) { return g.build(p, d) })
}

// structural validates every child when the group has input.
func (g group) structural(path string, data map[string]string, messages Messages, options Options) (Errors, error) {
	if !g.present(path, data) {
		return nil, nil
	}
	var errs Errors
	for _, f := range g.fields {
		more, err := f.Node.Validate(ChildPath(path, f.Name), data, messages, options)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ChildPath(path, f.Name), err)
		}
		errs = append(errs, more...)
	}
	return errs, nil
}

func (g group) build(path string, data map[string]string) (*BoundTree, error) {
	if !g.present(path, data) {
		return nil, nil
	}
	entries := make([]Entry, 0, len(g.fields))
	for _, f := range g.fields {
		v, err := f.Node.ConvertAny(ChildPath(path, f.Name), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ChildPath(path, f.Name), err)
		}
		entries = append(entries, Entry{Name: f.Name, Value: v})
	}
	return NewBoundTree(entries...), nil
}

func (g group) Convert(path string, data map[string]string) (*BoundTree, error) {
	data, err := process(path, data, g.options)
	if err != nil {
		return nil, err
	}
	return g.build(path, data)
}

func (g group) ConvertAny(path string, data map[string]string) (any, error) {
	return g.Convert(path, data)
}

// Configure keeps the presence mode structural whatever fn does.
func (g group) Configure(fn func(Options) Options) Mapping[*BoundTree] {
	g.options = fn(g.options).WithPresenceMode(Multiple)
	return g
}

func (g group) Label(label string) Mapping[*BoundTree] {
	return g.Configure(func(o Options) Options { return o.WithLabel(label) })
}

func (g group) Constraint(cs ...Constraint) Mapping[*BoundTree] {
	return g.Configure(func(o Options) Options { return o.AppendConstraints(cs...) })
}

func (g group) Process(ps ...PreProcessor) Mapping[*BoundTree] {
	return g.Configure(func(o Options) Options { return o.AppendProcessors(ps...) })
}

func (g group) Verifying(cs ...ExtraConstraint[*BoundTree]) Mapping[*BoundTree] {
	return g.Configure(func(o Options) Options { return o.AppendExtraConstraints(erase(cs)...) })
}
