package recordkit

// Field is a single declared field: a name plus, for optional fields, the
// declared default value.
type Field struct {
	Name    string
	Default any
}

// Factory produces a fresh default value per construction. Wrap mutable
// defaults (maps, slices, records) in a Factory so instances do not share
// the same underlying object.
type Factory func() any

// FieldSet is the resolved, ordered, deduplicated required/optional field
// listing of a record type. It is computed once at type-definition time and
// is read-only afterwards; sharing it across concurrently constructed
// instances needs no locking.
//
// Slot layout: required fields occupy slots [0, len(required)), optional
// fields follow in declared order.
type FieldSet struct {
	required []string
	optional []Field
	index    map[string]int
}

func newFieldSet(required []string, optional []Field) *FieldSet {
	fs := &FieldSet{
		required: required,
		optional: optional,
		index:    make(map[string]int, len(required)+len(optional)),
	}
	for i, n := range required {
		fs.index[n] = i
	}
	for i, f := range optional {
		fs.index[f.Name] = len(required) + i
	}
	return fs
}

// Required returns the ordered required field names.
func (fs *FieldSet) Required() []string {
	out := make([]string, len(fs.required))
	copy(out, fs.required)
	return out
}

// Optional returns the ordered optional fields with their defaults.
func (fs *FieldSet) Optional() []Field {
	out := make([]Field, len(fs.optional))
	copy(out, fs.optional)
	return out
}

// Names returns every resolved field name, required first, then optional,
// each group in declaration order.
func (fs *FieldSet) Names() []string {
	out := make([]string, 0, fs.Len())
	out = append(out, fs.required...)
	for _, f := range fs.optional {
		out = append(out, f.Name)
	}
	return out
}

// Len returns the total number of resolved fields.
func (fs *FieldSet) Len() int { return len(fs.required) + len(fs.optional) }

// Has reports whether name is a resolved field (required or optional).
func (fs *FieldSet) Has(name string) bool {
	_, ok := fs.index[name]
	return ok
}

// slot returns the value-slot index for name.
func (fs *FieldSet) slot(name string) (int, bool) {
	i, ok := fs.index[name]
	return i, ok
}

// name returns the field name occupying slot i.
func (fs *FieldSet) name(i int) string {
	if i < len(fs.required) {
		return fs.required[i]
	}
	return fs.optional[i-len(fs.required)].Name
}

// defaultFor returns the declared default for slot i; ok is false for
// required slots.
func (fs *FieldSet) defaultFor(i int) (any, bool) {
	if i < len(fs.required) {
		return nil, false
	}
	return fs.optional[i-len(fs.required)].Default, true
}

// equal reports whether two field sets resolve to the same names, order and
// defaults.
func (fs *FieldSet) equal(other *FieldSet) bool {
	if fs == other {
		return true
	}
	if len(fs.required) != len(other.required) || len(fs.optional) != len(other.optional) {
		return false
	}
	for i, n := range fs.required {
		if other.required[i] != n {
			return false
		}
	}
	for i, f := range fs.optional {
		if other.optional[i].Name != f.Name || !deepEqualValue(f.Default, other.optional[i].Default) {
			return false
		}
	}
	return true
}
