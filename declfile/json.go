package declfile

import (
	"bytes"
	"fmt"
	"io"

	j "github.com/goccy/go-json"

	recordkit "github.com/reoring/recordkit"
	"github.com/reoring/recordkit/i18n"
)

// ImportJSON parses a JSON declaration document and resolves every declared
// type. Objects are read off the go-json token stream so the authored key
// order of optional fields and defaults survives.
func ImportJSON(data []byte) (*Registry, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := parseJSONValue(dec)
	if err != nil {
		return nil, recordkit.Issues{recordkit.Issue{
			Path:    "/",
			Code:    recordkit.CodeParseError,
			Message: i18n.T(recordkit.CodeParseError, nil),
			Cause:   err,
		}}
	}
	if tok, err := dec.Token(); err != io.EOF {
		return nil, recordkit.Issues{recordkit.Issue{
			Path:    "/",
			Code:    recordkit.CodeParseError,
			Message: i18n.T(recordkit.CodeParseError, nil),
			Hint:    fmt.Sprintf("trailing input after document: %v", tok),
			Cause:   err,
		}}
	}
	doc, ok := root.(*orderedObj)
	if !ok {
		return nil, recordkit.Issues{declIssue(recordkit.CodeInvalidDecl, "", "document root must be an object")}
	}

	var decls []decl
	var iss recordkit.Issues
	for _, key := range doc.keys {
		if key != "types" {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, "", "unknown document key: "+key))
			continue
		}
		arr, ok := doc.vals[key].([]any)
		if !ok {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, "", "types must be an array"))
			continue
		}
		for _, e := range arr {
			d, i2 := jsonDecl(e)
			if len(i2) > 0 {
				iss = recordkit.AppendIssues(iss, i2...)
				continue
			}
			decls = append(decls, d)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return buildRegistry(decls)
}

func jsonDecl(v any) (decl, recordkit.Issues) {
	var d decl
	var iss recordkit.Issues
	obj, ok := v.(*orderedObj)
	if !ok {
		return d, recordkit.Issues{declIssue(recordkit.CodeInvalidDecl, "", "type declaration must be an object")}
	}
	for _, key := range obj.keys {
		val := obj.vals[key]
		if _, known := declKeys[key]; !known {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "unknown declaration key: "+key))
			continue
		}
		switch key {
		case "name":
			d.name, _ = val.(string)
		case "extends":
			d.extends, _ = val.(string)
		case "required":
			arr, ok := val.([]any)
			if !ok {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "required must be an array"))
				continue
			}
			for _, e := range arr {
				s, ok := e.(string)
				if !ok {
					iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "required entries must be strings"))
					continue
				}
				d.required = append(d.required, s)
			}
		case "optional":
			fields, i2 := jsonFields(val, d.name)
			iss = recordkit.AppendIssues(iss, i2...)
			d.optional = fields
		case "defaults":
			fields, i2 := jsonFields(val, d.name)
			iss = recordkit.AppendIssues(iss, i2...)
			d.defaults = fields
		case "hashable":
			b, ok := val.(bool)
			if !ok {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "hashable must be a bool"))
				continue
			}
			d.hashable = b
		case "permissive_defaults":
			b, ok := val.(bool)
			if !ok {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "permissive_defaults must be a bool"))
				continue
			}
			d.permissive = b
		}
	}
	return d, iss
}

// jsonFields converts an ordered object into ordered fields, flattening any
// nested ordered objects into plain maps.
func jsonFields(v any, typeName string) ([]recordkit.Field, recordkit.Issues) {
	obj, ok := v.(*orderedObj)
	if !ok {
		return nil, recordkit.Issues{declIssue(recordkit.CodeInvalidDecl, typeName, "field object expected")}
	}
	out := make([]recordkit.Field, 0, len(obj.keys))
	for _, name := range obj.keys {
		out = append(out, recordkit.Field{Name: name, Default: plainValue(obj.vals[name])})
	}
	return out, nil
}

// orderedObj is a JSON object with its key order preserved.
type orderedObj struct {
	keys []string
	vals map[string]any
}

func (o *orderedObj) set(key string, v any) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// plainValue rewrites ordered objects into plain maps; once a value is a
// field default its internal key order no longer matters.
func plainValue(v any) any {
	switch t := v.(type) {
	case *orderedObj:
		m := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			m[k] = plainValue(t.vals[k])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

func parseJSONValue(dec *j.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			obj := &orderedObj{vals: map[string]any{}}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key expected, got %v", kt)
				}
				val, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				e, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, e)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case j.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return v, nil
	}
}
