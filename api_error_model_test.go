package lexmeta_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	lexmeta "github.com/spraakbanken/lexmeta"
)

func TestIssues_ErrorSummarizesFirstThree(t *testing.T) {
	iss := lexmeta.Issues{
		{Path: "size", Code: lexmeta.CodeRequired},
		{Path: "contact_info.affiliation", Code: lexmeta.CodeInvalidType},
		{Path: "homepage", Code: lexmeta.CodeUnknownKey},
		{Path: "name", Code: lexmeta.CodeMultilingualEmpty},
	}
	got := iss.Error()
	want := "required at size; invalid_type at contact_info.affiliation; unknown_key at homepage; ... (total 4)"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if (lexmeta.Issues{{Code: lexmeta.CodeInvalidType}}).Error() != "invalid_type at <root>" {
		t.Fatalf("root path not rendered: %q", lexmeta.Issues{{Code: lexmeta.CodeInvalidType}}.Error())
	}
}

func TestIssues_AsIssuesThroughWrapping(t *testing.T) {
	iss := lexmeta.Issues{{Path: "size", Code: lexmeta.CodeRequired}}
	err := fmt.Errorf("validating saldo.yaml: %w", iss)

	got, ok := lexmeta.AsIssues(err)
	if !ok || len(got) != 1 || got[0].Path != "size" {
		t.Fatalf("expected wrapped issues, got %v %v", got, ok)
	}
	var target lexmeta.Issues
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed")
	}
	if _, ok := lexmeta.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error must not yield issues")
	}
	if _, ok := lexmeta.AsIssues(nil); ok {
		t.Fatalf("nil must not yield issues")
	}
}

func TestIssue_KindTaxonomy(t *testing.T) {
	cases := map[string]lexmeta.Kind{
		lexmeta.CodeUnknownKey:        lexmeta.KindSchemaViolation,
		lexmeta.CodeDuplicateKey:      lexmeta.KindSchemaViolation,
		lexmeta.CodeInvalidType:       lexmeta.KindTypeMismatch,
		lexmeta.CodeInvalidEnum:       lexmeta.KindTypeMismatch,
		lexmeta.CodeRequired:          lexmeta.KindMissingRequiredField,
		lexmeta.CodeMultilingualEmpty: lexmeta.KindMultilingualEmpty,
		"custom":                      lexmeta.KindUnknown,
	}
	for code, want := range cases {
		if got := (lexmeta.Issue{Code: code}).Kind(); got != want {
			t.Fatalf("%s: want %v, got %v", code, want, got)
		}
	}
}

func TestIssues_ByKindAndPaths(t *testing.T) {
	iss := lexmeta.Issues{
		{Path: "size", Code: lexmeta.CodeRequired},
		{Path: "contact_info.affiliation", Code: lexmeta.CodeRequired},
		{Path: "homepage", Code: lexmeta.CodeUnknownKey},
	}
	req := iss.ByKind(lexmeta.KindMissingRequiredField)
	if len(req) != 2 {
		t.Fatalf("want 2 required issues, got %v", req)
	}
	if strings.Join(iss.Paths(), ",") != "size,contact_info.affiliation,homepage" {
		t.Fatalf("unexpected paths %v", iss.Paths())
	}
	if !req[1].Nested() || req[1].Field() != "contact_info" {
		t.Fatalf("nested issue not recognized: %+v", req[1])
	}
	if req[0].Nested() || req[0].Field() != "size" {
		t.Fatalf("top-level issue misclassified: %+v", req[0])
	}
}

func TestIssueAt_TranslatesAndKeepsParams(t *testing.T) {
	it := lexmeta.IssueAt(lexmeta.At("contact_info").Field("email"), lexmeta.CodeInvalidType, "expected string",
		map[string]string{"expected": "string"})
	if it.Path != "contact_info.email" || it.Message == "" || it.Params["expected"] != "string" {
		t.Fatalf("unexpected issue %+v", it)
	}
	if !strings.HasPrefix(it.String(), "contact_info.email: ") || !strings.HasSuffix(it.String(), "(expected string)") {
		t.Fatalf("unexpected rendering %q", it.String())
	}
	if got := lexmeta.AppendIssues(nil, it); len(got) != 1 {
		t.Fatalf("AppendIssues lost the issue")
	}
}

func TestIssue_DottedKeyIsOneSegment(t *testing.T) {
	it := lexmeta.IssueAt(lexmeta.Root().Field("foo.bar"), lexmeta.CodeUnknownKey, "", map[string]string{"key": "foo.bar"})
	if it.Path != "foo.bar" {
		t.Fatalf("unexpected path %q", it.Path)
	}
	if it.Nested() || it.Field() != "foo.bar" {
		t.Fatalf("top-level key with a dot misclassified: nested=%v field=%q", it.Nested(), it.Field())
	}

	nested := lexmeta.IssueAt(lexmeta.Root().Field("contact_info").Field("x.y"), lexmeta.CodeUnknownKey, "", nil)
	if !nested.Nested() || nested.Field() != "contact_info" {
		t.Fatalf("nested key misclassified: %+v", nested)
	}
}
