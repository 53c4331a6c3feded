package dsl

import (
	recordkit "github.com/reoring/recordkit"
)

type typeBuilder struct {
	name       string
	base       *recordkit.Type
	required   []string
	optional   []recordkit.Field
	overrides  []recordkit.Field
	hashable   bool
	permissive bool
}

// NewType creates a builder for a root record type.
func NewType(name string) *typeBuilder {
	return &typeBuilder{name: name}
}

// Extend creates a builder for a type extending base. The new type inherits
// base's resolved fields; its own declarations are appended after them.
func Extend(base *recordkit.Type, name string) *typeBuilder {
	return &typeBuilder{name: name, base: base}
}

// Required appends one or more required field names in declared order.
func (b *typeBuilder) Required(names ...string) *typeBuilder {
	b.required = append(b.required, names...)
	return b
}

// Optional appends an optional field with its default value.
func (b *typeBuilder) Optional(name string, def any) *typeBuilder {
	b.optional = append(b.optional, recordkit.Field{Name: name, Default: def})
	return b
}

// Default declares a class-level default for an inherited field. On an
// inherited required field this demotes it to optional; on an inherited
// optional field it replaces the default. A name matching no inherited
// field is rejected at Build unless PermissiveDefaults is set.
func (b *typeBuilder) Default(name string, v any) *typeBuilder {
	b.overrides = append(b.overrides, recordkit.Field{Name: name, Default: v})
	return b
}

// Hashable opts the type into Record.Hash. Instances stay mutable; hash a
// record only while it is not being modified.
func (b *typeBuilder) Hashable() *typeBuilder {
	b.hashable = true
	return b
}

// PermissiveDefaults keeps a Default that matches no inherited field as a
// plain type-level attribute (Type.ClassAttr) instead of rejecting it.
func (b *typeBuilder) PermissiveDefaults() *typeBuilder {
	b.permissive = true
	return b
}

// Build resolves the declaration and returns the Type.
func (b *typeBuilder) Build() (*recordkit.Type, error) {
	return recordkit.NewType(recordkit.TypeSpec{
		Name:                b.name,
		Base:                b.base,
		Required:            b.required,
		Optional:            b.optional,
		Overrides:           b.overrides,
		Hashable:            b.hashable,
		PermissiveOverrides: b.permissive,
	})
}

// MustBuild is like Build but panics on error.
func (b *typeBuilder) MustBuild() *recordkit.Type {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// Factory wraps a per-construction default value factory.
func Factory(fn func() any) recordkit.Factory { return recordkit.Factory(fn) }
