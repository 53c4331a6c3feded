package recordkit

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDuplicateField   = "duplicate_field"   // field declared more than once across a type and its ancestors
	CodeMissingField     = "missing_field"     // required field unbound at construction
	CodeUnknownField     = "unknown_field"     // keyword or access names no resolved field
	CodeDuplicateBinding = "duplicate_binding" // field bound both positionally and by keyword
	CodeInvalidCall      = "invalid_call"      // malformed argument sequence (overflow, positional after keyword)
	CodeNotHashable      = "not_hashable"      // Hash() on a type without the hash capability
	CodeInvalidDecl      = "invalid_decl"      // malformed type declaration (empty name, unknown base, cycle)
	CodeParseError       = "parse_error"       // declaration document could not be parsed
)

// Issue represents a single contract violation, detected synchronously at
// type-definition or instance-construction time.
type Issue struct {
	Path    string // Slash-prefixed field path (for example: /attr1), "/" for type-level issues.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"type":"SecondRecord",
	// "field":"attr1"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of contract violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. duplicate_field at /attr1
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
