package declfile

import (
	recordkit "github.com/reoring/recordkit"
	"github.com/reoring/recordkit/i18n"
)

// decl is one parsed type declaration, field order preserved as authored.
type decl struct {
	name       string
	extends    string
	required   []string
	optional   []recordkit.Field
	defaults   []recordkit.Field
	hashable   bool
	permissive bool
}

// declKeys are the keys accepted inside a type declaration.
var declKeys = map[string]struct{}{
	"name":                {},
	"extends":             {},
	"required":            {},
	"optional":            {},
	"defaults":            {},
	"hashable":            {},
	"permissive_defaults": {},
}

// Registry holds the resolved types of one document in declaration order.
type Registry struct {
	order []string
	types map[string]*recordkit.Type
}

// Lookup returns the named type.
func (r *Registry) Lookup(name string) (*recordkit.Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns the type names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of resolved types.
func (r *Registry) Len() int { return len(r.order) }

func declIssue(code, typeName, hint string) recordkit.Issue {
	return recordkit.Issue{
		Path:    "/" + typeName,
		Code:    code,
		Message: i18n.T(code, nil),
		Hint:    hint,
		Params:  map[string]any{"type": typeName},
	}
}

// buildRegistry resolves parsed declarations into types. Declarations may
// extend types declared anywhere in the same document; unresolvable bases
// (unknown name or dependency cycle) fail the whole import.
func buildRegistry(decls []decl) (*Registry, error) {
	var iss recordkit.Issues
	seen := map[string]struct{}{}
	for _, d := range decls {
		if d.name == "" {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "type declaration without a name"))
			continue
		}
		if _, dup := seen[d.name]; dup {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "type declared more than once"))
			continue
		}
		seen[d.name] = struct{}{}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	reg := &Registry{types: map[string]*recordkit.Type{}}
	pending := decls
	for len(pending) > 0 {
		var next []decl
		progressed := false
		for _, d := range pending {
			var base *recordkit.Type
			if d.extends != "" {
				b, ok := reg.types[d.extends]
				if !ok {
					next = append(next, d)
					continue
				}
				base = b
			}
			t, err := recordkit.NewType(recordkit.TypeSpec{
				Name:                d.name,
				Base:                base,
				Required:            d.required,
				Optional:            wrapMutableDefaults(d.optional),
				Overrides:           wrapMutableDefaults(d.defaults),
				Hashable:            d.hashable,
				PermissiveOverrides: d.permissive,
			})
			if err != nil {
				if i2, ok := recordkit.AsIssues(err); ok {
					iss = recordkit.AppendIssues(iss, i2...)
				} else {
					iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, err.Error()))
				}
				progressed = true
				continue
			}
			reg.types[d.name] = t
			reg.order = append(reg.order, d.name)
			progressed = true
		}
		if !progressed {
			for _, d := range next {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "unknown base type or dependency cycle: "+d.extends))
			}
			break
		}
		pending = next
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return reg, nil
}

// wrapMutableDefaults replaces map- and slice-valued defaults with a factory
// that deep-copies the document value per construction.
func wrapMutableDefaults(fields []recordkit.Field) []recordkit.Field {
	out := make([]recordkit.Field, len(fields))
	for i, f := range fields {
		switch f.Default.(type) {
		case map[string]any, []any:
			v := f.Default
			f.Default = recordkit.Factory(func() any { return recordkit.DeepCopy(v) })
		}
		out[i] = f
	}
	return out
}
