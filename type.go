package recordkit

import (
	"github.com/reoring/recordkit/i18n"
)

// TypeSpec is the explicit declaration a record type is resolved from: the
// type's own required and optional fields, its class-level defaults, and a
// reference to its base type. Field extension is modeled as composition —
// a declaration referencing the base declaration — not attribute lookup
// through an inheritance chain.
type TypeSpec struct {
	Name     string
	Base     *Type   // nil for a root declaration
	Required []string
	Optional []Field

	// Overrides are class-level defaults. An override naming an inherited
	// required field demotes it to optional; one naming an inherited
	// optional field replaces its default.
	Overrides []Field

	// Hashable opts the type into Record.Hash. Instances stay mutable, so
	// hashability is the author's responsibility.
	Hashable bool

	// PermissiveOverrides keeps an override that matches no inherited field
	// as a plain type-level attribute (see Type.ClassAttr) instead of
	// rejecting it at definition time.
	PermissiveOverrides bool
}

// Type is a generated record type: a name plus its Resolved Field Set.
// A Type is resolved once at definition time and read-only afterwards; it is
// shared by every instance and safe for concurrent use.
type Type struct {
	name       string
	base       *Type
	fields     *FieldSet
	hashable   bool
	classAttrs map[string]any
}

// NewType resolves a TypeSpec into a Type. All resolution issues are
// collected and returned together; a type either resolves fully or is not
// defined at all.
func NewType(spec TypeSpec) (*Type, error) {
	if spec.Name == "" {
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeInvalidDecl,
			Message: i18n.T(CodeInvalidDecl, nil),
			Hint:    "type name is empty",
		}}
	}
	var baseFields *FieldSet
	if spec.Base != nil {
		baseFields = spec.Base.fields
	}
	fs, classAttrs, iss := resolveFields(
		spec.Name, baseFields, spec.Required, spec.Optional, spec.Overrides, spec.PermissiveOverrides)
	if len(iss) > 0 {
		return nil, iss
	}
	return &Type{
		name:       spec.Name,
		base:       spec.Base,
		fields:     fs,
		hashable:   spec.Hashable,
		classAttrs: classAttrs,
	}, nil
}

// MustNewType is like NewType but panics on error.
func MustNewType(spec TypeSpec) *Type {
	t, err := NewType(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// DefineRecordType produces a new root record type from a name, required
// field names and optional fields with defaults.
func DefineRecordType(name string, required []string, optional []Field) (*Type, error) {
	return NewType(TypeSpec{Name: name, Required: required, Optional: optional})
}

// DefineHashableRecordType is DefineRecordType with the hash capability
// attached.
func DefineHashableRecordType(name string, required []string, optional []Field) (*Type, error) {
	return NewType(TypeSpec{Name: name, Required: required, Optional: optional, Hashable: true})
}

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// Base returns the base type, or nil for a root type.
func (t *Type) Base() *Type { return t.base }

// Fields returns the Resolved Field Set.
func (t *Type) Fields() *FieldSet { return t.fields }

// Hashable reports whether instances support Hash.
func (t *Type) Hashable() bool { return t.hashable }

// ClassAttr returns a type-level attribute retained by the permissive
// override policy.
func (t *Type) ClassAttr(name string) (any, bool) {
	v, ok := t.classAttrs[name]
	return v, ok
}

// Equal reports whether two types are interchangeable: identical, or
// resolving to the same field names, order and defaults.
func (t *Type) Equal(other *Type) bool {
	if other == nil {
		return false
	}
	return t == other || t.fields.equal(other.fields)
}

// KV binds a constructor argument to a field by name.
type KV struct {
	Name  string
	Value any
}

// Kw builds a keyword argument for Type.New.
func Kw(name string, v any) KV { return KV{Name: name, Value: v} }

// Binding is the bit flag recording how a field slot was filled at
// construction time.
type Binding uint8

const (
	BindingPositional Binding = 1 << iota // Bound by a positional argument.
	BindingKeyword                        // Bound by a keyword argument.
	BindingDefault                        // Declared default was applied.
)

// New constructs an instance. Plain arguments bind positionally to required
// fields, then optional fields, left to right; KV arguments bind by keyword
// and must follow every positional argument. Unbound optional fields take
// their declared default (a Factory default is invoked per construction);
// an unbound required field is an error. All binding issues are collected
// and returned together.
func (t *Type) New(args ...any) (*Record, error) {
	fs := t.fields
	values := make([]any, fs.Len())
	bindings := make([]Binding, fs.Len())
	var iss Issues

	add := func(code, field, hint string) {
		iss = AppendIssues(iss, Issue{
			Path:    "/" + field,
			Code:    code,
			Message: i18n.T(code, nil),
			Hint:    hint,
			Params:  map[string]any{"type": t.name, "field": field},
		})
	}

	pos := 0
	seenKeyword := false
	for _, arg := range args {
		kv, isKV := arg.(KV)
		if !isKV {
			if seenKeyword {
				add(CodeInvalidCall, "", "positional argument follows keyword argument")
				continue
			}
			if pos >= fs.Len() {
				add(CodeInvalidCall, "", "too many positional arguments")
				continue
			}
			values[pos] = arg
			bindings[pos] = BindingPositional
			pos++
			continue
		}
		seenKeyword = true
		i, ok := fs.slot(kv.Name)
		if !ok {
			add(CodeUnknownField, kv.Name, "keyword matches no resolved field")
			continue
		}
		if bindings[i] != 0 {
			add(CodeDuplicateBinding, kv.Name, "field already bound")
			continue
		}
		values[i] = kv.Value
		bindings[i] = BindingKeyword
	}

	for i := 0; i < fs.Len(); i++ {
		if bindings[i] != 0 {
			continue
		}
		if d, ok := fs.defaultFor(i); ok {
			values[i] = applyDefault(d)
			bindings[i] = BindingDefault
			continue
		}
		add(CodeMissingField, fs.name(i), "required field unbound")
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return &Record{typ: t, values: values, bindings: bindings}, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(args ...any) *Record {
	r, err := t.New(args...)
	if err != nil {
		panic(err)
	}
	return r
}

func applyDefault(d any) any {
	switch f := d.(type) {
	case Factory:
		return f()
	case func() any:
		return f()
	default:
		return d
	}
}
