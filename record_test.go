package recordkit_test

import (
	"strings"
	"testing"

	recordkit "github.com/reoring/recordkit"
	"github.com/reoring/recordkit/dsl"
)

func mustType(t *testing.T, name string, required []string, optional []recordkit.Field) *recordkit.Type {
	t.Helper()
	typ, err := recordkit.DefineRecordType(name, required, optional)
	if err != nil {
		t.Fatalf("define %s: %v", name, err)
	}
	return typ
}

func TestConstruction_PositionalAndKeyword(t *testing.T) {
	typ := mustType(t, "TestRecord", []string{"r1", "r2"}, []recordkit.Field{{Name: "o1", Default: 7}})

	rec, err := typ.New(1, 2)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := rec.MustGet("r1"); got != 1 {
		t.Fatalf("r1 = %v, want 1", got)
	}
	if got := rec.MustGet("r2"); got != 2 {
		t.Fatalf("r2 = %v, want 2", got)
	}
	if got := rec.MustGet("o1"); got != 7 {
		t.Fatalf("o1 = %v, want default 7", got)
	}

	rec, err = typ.New(1, 2, recordkit.Kw("o1", 9))
	if err != nil {
		t.Fatalf("new with keyword: %v", err)
	}
	if got := rec.MustGet("o1"); got != 9 {
		t.Fatalf("o1 = %v, want 9", got)
	}

	// keyword-only construction
	rec, err = typ.New(recordkit.Kw("r2", 2), recordkit.Kw("r1", 1))
	if err != nil {
		t.Fatalf("keyword-only new: %v", err)
	}
	if rec.MustGet("r1") != 1 || rec.MustGet("r2") != 2 {
		t.Fatalf("keyword-only binding wrong: %v", rec)
	}

	// positional args spill into the optional group
	rec, err = typ.New(1, 2, 3)
	if err != nil {
		t.Fatalf("positional optional: %v", err)
	}
	if got := rec.MustGet("o1"); got != 3 {
		t.Fatalf("o1 = %v, want positional 3", got)
	}
}

func TestConstruction_Bindings(t *testing.T) {
	typ := mustType(t, "Bound", []string{"req"}, []recordkit.Field{{Name: "opt", Default: true}})
	rec, err := typ.New(1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b, _ := rec.BindingOf("req"); b != recordkit.BindingPositional {
		t.Fatalf("req binding = %v, want positional", b)
	}
	if b, _ := rec.BindingOf("opt"); b != recordkit.BindingDefault {
		t.Fatalf("opt binding = %v, want default", b)
	}
	rec, err = typ.New(recordkit.Kw("req", 1), recordkit.Kw("opt", false))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b, _ := rec.BindingOf("opt"); b != recordkit.BindingKeyword {
		t.Fatalf("opt binding = %v, want keyword", b)
	}
}

func TestConstruction_Errors(t *testing.T) {
	typ := mustType(t, "Strict", []string{"r1", "r2"}, []recordkit.Field{{Name: "o1", Default: 0}})

	cases := []struct {
		name string
		args []any
		code string
	}{
		{"missing required", []any{1}, recordkit.CodeMissingField},
		{"unknown keyword", []any{1, 2, recordkit.Kw("nope", 3)}, recordkit.CodeUnknownField},
		{"double binding", []any{1, 2, recordkit.Kw("r1", 5)}, recordkit.CodeDuplicateBinding},
		{"keyword twice", []any{recordkit.Kw("r1", 1), recordkit.Kw("r1", 2)}, recordkit.CodeDuplicateBinding},
		{"too many positional", []any{1, 2, 3, 4}, recordkit.CodeInvalidCall},
		{"positional after keyword", []any{1, recordkit.Kw("r2", 2), 3}, recordkit.CodeInvalidCall},
	}
	for _, tc := range cases {
		_, err := typ.New(tc.args...)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		iss, ok := recordkit.AsIssues(err)
		if !ok {
			t.Fatalf("%s: expected Issues, got %v", tc.name, err)
		}
		found := false
		for _, it := range iss {
			if it.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected code %s in %v", tc.name, tc.code, iss)
		}
	}
}

func TestConstruction_MissingFieldsAllReported(t *testing.T) {
	typ := mustType(t, "Multi", []string{"a", "b", "c"}, nil)
	_, err := typ.New()
	iss, ok := recordkit.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if len(iss) != 3 {
		t.Fatalf("expected one issue per missing field, got %v", iss)
	}
	for i, want := range []string{"/a", "/b", "/c"} {
		if iss[i].Code != recordkit.CodeMissingField || iss[i].Path != want {
			t.Fatalf("issue %d = %+v, want missing_field at %s", i, iss[i], want)
		}
	}
}

func TestString_SpecScenario(t *testing.T) {
	second := mustType(t, "SecondRecord",
		[]string{"attr1", "attr2"},
		[]recordkit.Field{{Name: "attr3", Default: 0}})

	rec, err := second.New(1, 2, recordkit.Kw("attr3", 3))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := rec.String(); got != "SecondRecord(attr1=1, attr2=2, attr3=3)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestString_QuotesStrings(t *testing.T) {
	typ := mustType(t, "Named", []string{"name"}, nil)
	rec := typ.MustNew("alice")
	if got := rec.String(); got != `Named(name="alice")` {
		t.Fatalf("String() = %q", got)
	}
}

func TestInheritance_SpecScenario(t *testing.T) {
	second := mustType(t, "SecondRecord",
		[]string{"attr1", "attr2"},
		[]recordkit.Field{{Name: "attr3", Default: 0}})
	third := dsl.Extend(second, "Third").
		Required("third1").
		Optional("third2", 5).
		MustBuild()

	rec, err := third.New(1, 2, 3, recordkit.Kw("third2", 4))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	wantNames := []string{"attr1", "attr2", "third1", "attr3", "third2"}
	names := third.Fields().Names()
	if strings.Join(names, ",") != strings.Join(wantNames, ",") {
		t.Fatalf("resolved order = %v, want %v", names, wantNames)
	}
	wantVals := []any{1, 2, 3, 0, 4}
	for i, n := range wantNames {
		if got := rec.MustGet(n); got != wantVals[i] {
			t.Fatalf("%s = %v, want %v", n, got, wantVals[i])
		}
	}
	if got := rec.String(); got != "Third(attr1=1, attr2=2, third1=3, attr3=0, third2=4)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestGetSet_ClosedFieldSet(t *testing.T) {
	typ := mustType(t, "Mut", []string{"x"}, nil)
	rec := typ.MustNew(1)
	if err := rec.Set("x", 42); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := rec.MustGet("x"); got != 42 {
		t.Fatalf("x = %v after set, want 42", got)
	}
	if err := rec.Set("y", 1); err == nil {
		t.Fatalf("expected error setting undeclared field")
	}
	if _, err := rec.Get("y"); err == nil {
		t.Fatalf("expected error getting undeclared field")
	}
	if iss, ok := recordkit.AsIssues(rec.Set("y", 1)); !ok || iss[0].Code != recordkit.CodeUnknownField {
		t.Fatalf("expected unknown_field, got %v", iss)
	}
}

func TestEquality(t *testing.T) {
	typ := mustType(t, "Eq", []string{"a"}, []recordkit.Field{{Name: "b", Default: 0}})
	other := mustType(t, "Eq2", []string{"a"}, []recordkit.Field{{Name: "b", Default: 0}})

	r1 := typ.MustNew(1)
	r2 := typ.MustNew(1)
	r3 := typ.MustNew(2)

	if !r1.Equal(r1) {
		t.Fatalf("equality not reflexive")
	}
	if !r1.Equal(r2) || !r2.Equal(r1) {
		t.Fatalf("equality not symmetric for equal values")
	}
	if r1.Equal(r3) {
		t.Fatalf("records with different values compare equal")
	}
	// distinct concrete types are never equal, even with identical values
	if r1.Equal(other.MustNew(1)) {
		t.Fatalf("records of distinct types compare equal")
	}
	// map-valued fields compare by value
	m1 := typ.MustNew(1, recordkit.Kw("b", map[string]any{"k": 1}))
	m2 := typ.MustNew(1, recordkit.Kw("b", map[string]any{"k": 1}))
	if !m1.Equal(m2) {
		t.Fatalf("map-valued fields should compare by value")
	}
}

func TestTypeEquality(t *testing.T) {
	a := mustType(t, "A", []string{"x"}, []recordkit.Field{{Name: "y", Default: 1}})
	b := mustType(t, "B", []string{"x"}, []recordkit.Field{{Name: "y", Default: 1}})
	c := mustType(t, "C", []string{"x"}, []recordkit.Field{{Name: "y", Default: 2}})
	if !a.Equal(a) || !a.Equal(b) {
		t.Fatalf("types with identical field sets should be equal")
	}
	if a.Equal(c) {
		t.Fatalf("types with different defaults should not be equal")
	}
}

func TestHash(t *testing.T) {
	typ, err := recordkit.DefineHashableRecordType("H",
		[]string{"a"}, []recordkit.Field{{Name: "m", Default: nil}})
	if err != nil {
		t.Fatalf("define: %v", err)
	}

	r1 := typ.MustNew(1, recordkit.Kw("m", map[string]any{"x": 1, "y": 2}))
	r2 := typ.MustNew(1, recordkit.Kw("m", map[string]any{"y": 2, "x": 1}))
	h1, err := r1.Hash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := r2.Hash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("equal records hash differently: %x vs %x", h1, h2)
	}

	r3 := typ.MustNew(2)
	h3, err := r3.Hash()
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h3 == h1 {
		t.Fatalf("distinct records collided (possible but suspicious for this input)")
	}

	plain := mustType(t, "P", []string{"a"}, nil)
	if _, err := plain.MustNew(1).Hash(); err == nil {
		t.Fatalf("expected not_hashable for plain type")
	} else if iss, ok := recordkit.AsIssues(err); !ok || iss[0].Code != recordkit.CodeNotHashable {
		t.Fatalf("expected not_hashable, got %v", err)
	}
}

func TestFactoryDefaults_NotShared(t *testing.T) {
	typ := dsl.NewType("Recursive").
		Optional("lst", dsl.Factory(func() any { return []any{} })).
		MustBuild()

	r1 := typ.MustNew()
	r2 := typ.MustNew()
	l1 := r1.MustGet("lst").([]any)
	if len(l1) != 0 {
		t.Fatalf("fresh default should be empty, got %v", l1)
	}
	l1 = append(l1, "x")
	if err := r1.Set("lst", l1); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := r2.MustGet("lst").([]any); len(got) != 0 {
		t.Fatalf("factory default shared between instances: %v", got)
	}
}

func TestCopyRecord(t *testing.T) {
	inner := mustType(t, "Simple", nil, []recordkit.Field{{Name: "simple", Default: true}})
	typ := dsl.NewType("Recursive").
		Optional("subrec", dsl.Factory(func() any { return inner.MustNew() })).
		Optional("lst", dsl.Factory(func() any { return []any{} })).
		MustBuild()

	rec := typ.MustNew(recordkit.Kw("lst", []any{0}))
	cp := recordkit.CopyRecord(rec)
	if cp == rec {
		t.Fatalf("copy returned the same instance")
	}
	if !cp.Equal(rec) {
		t.Fatalf("copy should compare equal to the source")
	}
	if cp.MustGet("subrec") == rec.MustGet("subrec") {
		t.Fatalf("nested record should be copied, not shared")
	}
	lst := rec.MustGet("lst").([]any)
	lst[0] = 99
	if got := cp.MustGet("lst").([]any); got[0] != 0 {
		t.Fatalf("copied slice shares backing store: %v", got)
	}

	// shallow clone keeps values shared
	cl := recordkit.CloneRecord(rec)
	if cl.MustGet("subrec") != rec.MustGet("subrec") {
		t.Fatalf("clone should share nested values")
	}
}
