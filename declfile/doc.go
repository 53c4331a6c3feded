// Package declfile imports record-type declarations from YAML or JSON
// documents and resolves them into recordkit types.
//
// A document declares types by name; later (or earlier — order does not
// matter) declarations may extend any other declared type:
//
//	types:
//	  - name: FirstRecord
//	    required: [attr1, attr2]
//	    optional:
//	      attr3: 0
//	  - name: Third
//	    extends: FirstRecord
//	    required: [third1]
//	    optional:
//	      third2: 5
//	    defaults:
//	      attr1: 10   # demotes the inherited required field
//	    hashable: true
//
// The declaration order of optional fields and defaults is preserved: YAML
// input is walked via yaml.Node mappings, JSON input via the go-json token
// stream, so neither goes through an unordered Go map.
//
// Map- and slice-valued defaults loaded from documents are deep-copied per
// construction, so instances never share the document's mutable value.
package declfile
