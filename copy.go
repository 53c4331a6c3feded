package recordkit

import "reflect"

// CopyRecord returns a new instance of the same type with every field value
// deep-copied: maps, slices and nested records are copied recursively, all
// other values are carried over as-is.
func CopyRecord(r *Record) *Record {
	values := make([]any, len(r.values))
	for i, v := range r.values {
		values[i] = DeepCopy(v)
	}
	bindings := make([]Binding, len(r.bindings))
	copy(bindings, r.bindings)
	return &Record{typ: r.typ, values: values, bindings: bindings}
}

// CloneRecord returns a shallow copy: field values are carried over as-is,
// so mutable values stay shared with the source.
func CloneRecord(r *Record) *Record {
	values := make([]any, len(r.values))
	copy(values, r.values)
	bindings := make([]Binding, len(r.bindings))
	copy(bindings, r.bindings)
	return &Record{typ: r.typ, values: values, bindings: bindings}
}

// DeepCopy recursively copies maps, slices and *Record values; any other
// value is returned unchanged. It backs CopyRecord and the per-instance
// copying of mutable defaults loaded from declaration files.
func DeepCopy(v any) any {
	if v == nil {
		return nil
	}
	if r, ok := v.(*Record); ok {
		return CopyRecord(r)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copiedValue(iter.Value(), rv.Type().Elem()))
		}
		return out.Interface()
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copiedValue(rv.Index(i), rv.Type().Elem()))
		}
		return out.Interface()
	default:
		return v
	}
}

func copiedValue(elem reflect.Value, typ reflect.Type) reflect.Value {
	c := DeepCopy(elem.Interface())
	if c == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(c)
}
