package recordkit

import (
	"github.com/reoring/recordkit/i18n"
)

// resolveFields computes a type's Resolved Field Set from its own
// declarations and its base type's already-resolved set.
//
// The working set starts as a copy of the base set. Class-level overrides
// are reconciled first: an override naming an inherited required field
// demotes it to optional (appended to the end of the optional ordering with
// the override value as default); an override naming an inherited optional
// field replaces that field's default in place. Own required and optional
// declarations are then appended, in declared order, with any name already
// present anywhere in the working set rejected as a duplicate.
//
// classAttrs holds overrides that matched no inherited field when the
// permissive policy is in effect; under the strict policy those are issues.
func resolveFields(typeName string, base *FieldSet, ownRequired []string, ownOptional []Field, overrides []Field, permissive bool) (fs *FieldSet, classAttrs map[string]any, iss Issues) {
	var required []string
	var optional []Field
	if base != nil {
		required = append(required, base.required...)
		optional = append(optional, base.optional...)
	}

	add := func(code, field, hint string) {
		iss = AppendIssues(iss, Issue{
			Path:    "/" + field,
			Code:    code,
			Message: i18n.T(code, nil),
			Hint:    hint,
			Params:  map[string]any{"type": typeName, "field": field},
		})
	}

	indexIn := func(names []string, name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		return -1
	}
	optIndex := func(fields []Field, name string) int {
		for i, f := range fields {
			if f.Name == name {
				return i
			}
		}
		return -1
	}

	for _, ov := range overrides {
		if ov.Name == "" {
			add(CodeInvalidDecl, ov.Name, "empty field name")
			continue
		}
		if i := indexIn(required, ov.Name); i >= 0 {
			// demotion: the one sanctioned redeclaration
			required = append(required[:i], required[i+1:]...)
			optional = append(optional, Field{Name: ov.Name, Default: ov.Default})
			continue
		}
		if i := optIndex(optional, ov.Name); i >= 0 {
			optional[i].Default = ov.Default
			continue
		}
		if permissive {
			if classAttrs == nil {
				classAttrs = map[string]any{}
			}
			classAttrs[ov.Name] = ov.Default
			continue
		}
		add(CodeUnknownField, ov.Name, "default matches no inherited field")
	}

	for _, n := range ownRequired {
		if n == "" {
			add(CodeInvalidDecl, n, "empty field name")
			continue
		}
		if indexIn(required, n) >= 0 || optIndex(optional, n) >= 0 {
			add(CodeDuplicateField, n, "field already declared by this type or an ancestor")
			continue
		}
		required = append(required, n)
	}

	for _, f := range ownOptional {
		if f.Name == "" {
			add(CodeInvalidDecl, f.Name, "empty field name")
			continue
		}
		if indexIn(required, f.Name) >= 0 || optIndex(optional, f.Name) >= 0 {
			add(CodeDuplicateField, f.Name, "field already declared by this type or an ancestor")
			continue
		}
		optional = append(optional, f)
	}

	if len(iss) > 0 {
		return nil, nil, iss
	}
	return newFieldSet(required, optional), classAttrs, nil
}
