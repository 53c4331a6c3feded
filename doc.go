package recordkit

// Package recordkit provides mutable record types with a fixed, named,
// ordered set of fields, similar in spirit to a data class:
//
// - A record type is defined once from an ordered list of required field
//   names and an ordered mapping of optional field names to defaults.
// - Types extend other types: a derived type appends its own required and
//   optional fields and may demote an inherited required field to optional
//   by declaring a default for it.
// - Instances support positional and keyword construction, equality, a
//   stable string form, and opt-in hashing.
// - A stable error model via Issues (path, code, message).
//
// Design policy:
// - Keep only public APIs in the root package; put the fluent builder under
//   dsl/, declaration-file import under declfile/, and the CLI under
//   cmd/recordkit.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	first := dsl.NewType("FirstRecord").
//		Required("attr1", "attr2").
//		Optional("attr3", 0).
//		MustBuild()
//
//	rec, err := first.New(1, 2, recordkit.Kw("attr3", 3))
//	fmt.Println(rec) // FirstRecord(attr1=1, attr2=2, attr3=3)
