package declfile

import (
	"bytes"
	"errors"
	"io"

	recordkit "github.com/reoring/recordkit"
	"github.com/reoring/recordkit/i18n"
	"gopkg.in/yaml.v3"
)

func parseIssue(hint string, cause error) recordkit.Issues {
	return recordkit.Issues{recordkit.Issue{
		Path:    "/",
		Code:    recordkit.CodeParseError,
		Message: i18n.T(recordkit.CodeParseError, nil),
		Hint:    hint,
		Cause:   cause,
	}}
}

// ImportYAML parses a YAML declaration document and resolves every declared
// type. The document is walked as yaml.Node mappings so the authored order
// of optional fields and defaults survives. The input must hold exactly one
// document; a multi-document stream is rejected rather than truncated.
func ImportYAML(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return buildRegistry(nil)
		}
		return nil, parseIssue("", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, parseIssue("multiple YAML documents in one declaration file", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return buildRegistry(nil)
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, recordkit.Issues{declIssue(recordkit.CodeInvalidDecl, "", "document root must be a mapping")}
	}

	var decls []decl
	var iss recordkit.Issues
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		val := doc.Content[i+1]
		if key != "types" {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, "", "unknown document key: "+key))
			continue
		}
		if val.Kind != yaml.SequenceNode {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, "", "types must be a sequence"))
			continue
		}
		for _, tn := range val.Content {
			d, i2 := yamlDecl(tn)
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

func yamlDecl(n *yaml.Node) (decl, recordkit.Issues) {
	var d decl
	var iss recordkit.Issues
	if n.Kind != yaml.MappingNode {
		return d, recordkit.Issues{declIssue(recordkit.CodeInvalidDecl, "", "type declaration must be a mapping")}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		if _, ok := declKeys[key]; !ok {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "unknown declaration key: "+key))
			continue
		}
		switch key {
		case "name":
			d.name = val.Value
		case "extends":
			d.extends = val.Value
		case "required":
			if val.Kind != yaml.SequenceNode {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "required must be a sequence"))
				continue
			}
			for _, e := range val.Content {
				d.required = append(d.required, e.Value)
			}
		case "optional":
			fields, i2 := yamlFields(val, d.name)
			iss = recordkit.AppendIssues(iss, i2...)
			d.optional = fields
		case "defaults":
			fields, i2 := yamlFields(val, d.name)
			iss = recordkit.AppendIssues(iss, i2...)
			d.defaults = fields
		case "hashable":
			if err := val.Decode(&d.hashable); err != nil {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "hashable must be a bool"))
			}
		case "permissive_defaults":
			if err := val.Decode(&d.permissive); err != nil {
				iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, d.name, "permissive_defaults must be a bool"))
			}
		}
	}
	return d, iss
}

// yamlFields decodes a mapping node into ordered fields.
func yamlFields(n *yaml.Node, typeName string) ([]recordkit.Field, recordkit.Issues) {
	if n.Kind != yaml.MappingNode {
		return nil, recordkit.Issues{declIssue(recordkit.CodeInvalidDecl, typeName, "field mapping expected")}
	}
	var out []recordkit.Field
	var iss recordkit.Issues
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			iss = recordkit.AppendIssues(iss, declIssue(recordkit.CodeInvalidDecl, typeName, "undecodable default for field "+name))
			continue
		}
		out = append(out, recordkit.Field{Name: name, Default: v})
	}
	return out, iss
}
