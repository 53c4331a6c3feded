// Package dsl provides the fluent builder for recordkit types.
//
// Overview
//   - Builder API: declare a record type (required/optional/defaults/hashable)
//     with NewType()/Extend()/Required()/Optional()/MustBuild().
//   - Extension: Extend(base, name) starts a declaration whose fields are
//     appended after the base type's resolved fields.
//   - Demotion: Default(name, v) on an extending builder gives an inherited
//     required field a default, moving it to the optional group.
//   - Factories: Factory(fn) wraps a per-construction default so mutable
//     defaults are not shared between instances.
//
// Entry points
//   - NewType(name): create a root-type builder; chain Required/Optional
//     then MustBuild()/Build.
//   - Extend(base, name): create a builder extending an existing type.
//
// Example (quickstart)
//
//	first := dsl.NewType("FirstRecord").
//	    Required("attr1", "attr2").
//	    Optional("attr3", 0).
//	    MustBuild()
//
//	second := dsl.Extend(first, "Second").
//	    Required("second1").
//	    Optional("second2", 5).
//	    MustBuild()
//
//	// Second requires attr1, attr2, and second1.
//	baz, err := second.New(1, 2, 3, recordkit.Kw("second2", 4))
//
// Example (demotion)
//
//	relaxed := dsl.Extend(first, "Relaxed").
//	    Default("attr1", 10). // attr1 no longer required
//	    MustBuild()
//
// Example (mutable default)
//
//	holder := dsl.NewType("Holder").
//	    Optional("items", dsl.Factory(func() any { return []any{} })).
//	    MustBuild()
package dsl
