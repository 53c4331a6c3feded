package recordkit

import (
	"fmt"
	"hash/fnv"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/reoring/recordkit/i18n"
)

// Record is an instance of a record type: one value slot per resolved
// field. Field values may be reassigned after construction, but the field
// set is closed — no field may be added or removed. Records carry no
// internal synchronization; concurrent mutation of one instance is the
// caller's responsibility.
type Record struct {
	typ      *Type
	values   []any
	bindings []Binding
}

// Type returns the record's type.
func (r *Record) Type() *Type { return r.typ }

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, error) {
	i, ok := r.typ.fields.slot(name)
	if !ok {
		return nil, r.unknownField(name)
	}
	return r.values[i], nil
}

// MustGet is like Get but panics on an unknown field.
func (r *Record) MustGet(name string) any {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set reassigns the value of the named field.
func (r *Record) Set(name string, v any) error {
	i, ok := r.typ.fields.slot(name)
	if !ok {
		return r.unknownField(name)
	}
	r.values[i] = v
	return nil
}

// BindingOf reports how the named field was filled at construction time.
func (r *Record) BindingOf(name string) (Binding, bool) {
	i, ok := r.typ.fields.slot(name)
	if !ok {
		return 0, false
	}
	return r.bindings[i], true
}

func (r *Record) unknownField(name string) error {
	return Issues{Issue{
		Path:    "/" + name,
		Code:    CodeUnknownField,
		Message: i18n.T(CodeUnknownField, nil),
		Hint:    "name matches no resolved field",
		Params:  map[string]any{"type": r.typ.name, "field": name},
	}}
}

// String renders the record as TypeName(f1=v1, f2=v2, ...) over every
// resolved field, required then optional, in resolved order.
func (r *Record) String() string {
	b := &strings.Builder{}
	b.WriteString(r.typ.name)
	b.WriteByte('(')
	for i, v := range r.values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s=%s", r.typ.fields.name(i), valueString(v))
	}
	b.WriteByte(')')
	return b.String()
}

func valueString(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// Equal reports whether two records are of the same concrete type and every
// field value compares equal pairwise. Instances of distinct concrete types
// are never equal, even with identical field values.
func (r *Record) Equal(other *Record) bool {
	if r == other {
		return true
	}
	if other == nil || r.typ != other.typ {
		return false
	}
	for i, v := range r.values {
		if !deepEqualValue(v, other.values[i]) {
			return false
		}
	}
	return true
}

func deepEqualValue(a, b any) bool {
	ra, aIsRec := a.(*Record)
	rb, bIsRec := b.(*Record)
	if aIsRec || bIsRec {
		return aIsRec && bIsRec && ra.Equal(rb)
	}
	return reflect.DeepEqual(a, b)
}

// hashConf dumps values deterministically: map keys are sorted so equal
// values hash equal regardless of iteration order.
var hashConf = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Hash combines the hashes of all field values in resolved field order.
// It is only offered on types built with the hash capability; instances
// stay mutable, so a hashed record must not be modified afterwards.
func (r *Record) Hash() (uint64, error) {
	if !r.typ.hashable {
		return 0, Issues{Issue{
			Path:    "/",
			Code:    CodeNotHashable,
			Message: i18n.T(CodeNotHashable, nil),
			Hint:    "type was defined without the hash capability",
			Params:  map[string]any{"type": r.typ.name},
		}}
	}
	h := fnv.New64a()
	h.Write([]byte(r.typ.name))
	for i, v := range r.values {
		h.Write([]byte{0})
		h.Write([]byte(r.typ.fields.name(i)))
		h.Write([]byte{0})
		if nested, ok := v.(*Record); ok {
			nh, err := nested.Hash()
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(h, "%x", nh)
			continue
		}
		hashConf.Fdump(h, v)
	}
	return h.Sum64(), nil
}
