package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	lexmeta "github.com/spraakbanken/lexmeta"
	g "github.com/spraakbanken/lexmeta/dsl"
)

func firstCode(t *testing.T, err error) string {
	t.Helper()
	iss, ok := lexmeta.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("expected Issues error, got %v", err)
	}
	return iss[0].Code
}

func TestStringAdapter_Basic(t *testing.T) {
	ctx := context.Background()
	s := g.String()

	v, err := s.Parse(ctx, "hello")
	if err != nil || v != "hello" {
		t.Fatalf("parse ok expected, got v=%v err=%v", v, err)
	}
	for _, bad := range []any{1, true, nil, map[string]any{}} {
		_, err = s.Parse(ctx, bad)
		if code := firstCode(t, err); code != lexmeta.CodeInvalidType {
			t.Fatalf("%v: expected invalid_type, got %s", bad, code)
		}
	}
}

func TestBoolAdapter_NoCoercion(t *testing.T) {
	ctx := context.Background()
	v, err := g.Bool().Parse(ctx, false)
	if err != nil || v != false {
		t.Fatalf("parse ok expected, got v=%v err=%v", v, err)
	}
	if _, err := g.Bool().Parse(ctx, "true"); err == nil {
		t.Fatalf("string must not be coerced to bool")
	}
}

func TestIntAdapter_Forms(t *testing.T) {
	ctx := context.Background()
	ok := []any{42, int64(42), uint16(42), float64(42), json.Number("42"), json.Number("42.0")}
	for _, in := range ok {
		v, err := g.Int().Parse(ctx, in)
		if err != nil || v != 42 {
			t.Fatalf("%T(%v): expected 42, got v=%v err=%v", in, in, v, err)
		}
	}
	bad := []any{true, "42", 4.2, json.Number("4.2"), nil}
	for _, in := range bad {
		if _, err := g.Int().Parse(ctx, in); err == nil {
			t.Fatalf("%T(%v): expected error", in, in)
		}
	}
}

func TestLiteral(t *testing.T) {
	ctx := context.Background()
	lit := g.Literal("lexicon")
	if v, err := lit.Parse(ctx, "lexicon"); err != nil || v != "lexicon" {
		t.Fatalf("literal ok expected, got v=%v err=%v", v, err)
	}
	_, err := lit.Parse(ctx, "corpus")
	if code := firstCode(t, err); code != lexmeta.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum, got %s", code)
	}
	_, err = lit.Parse(ctx, 7)
	if code := firstCode(t, err); code != lexmeta.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %s", code)
	}
	sch, _ := lit.JSONSchema()
	if len(sch.Enum) != 1 || sch.Enum[0] != "lexicon" {
		t.Fatalf("enum not exported: %+v", sch)
	}
}

func TestNullable(t *testing.T) {
	ctx := context.Background()
	s := g.String().Nullable()
	v, err := s.Parse(ctx, nil)
	if err != nil || v != nil {
		t.Fatalf("nil expected, got v=%v err=%v", v, err)
	}
	if _, err := s.Parse(ctx, 1); err == nil {
		t.Fatalf("non-null value still type checked")
	}
	sch, _ := s.JSONSchema()
	if len(sch.OneOf) != 2 || sch.OneOf[0].Type != "null" || sch.OneOf[1].Type != "string" {
		t.Fatalf("unexpected nullable schema: %+v", sch)
	}
}

func TestArrayOf_IndexPathsAndEmpty(t *testing.T) {
	ctx := context.Background()
	arr := g.ArrayOf(g.String())

	v, err := arr.Parse(ctx, []any{})
	if err != nil {
		t.Fatalf("empty list: %v", err)
	}
	if l, ok := v.([]any); !ok || l == nil || len(l) != 0 {
		t.Fatalf("empty list must stay a non-nil empty list, got %#v", v)
	}

	_, err = arr.ParseAt(ctx, []any{"a", 1, "c", false}, lexmeta.At("keywords"), nil)
	iss, _ := lexmeta.AsIssues(err)
	if got := iss.Paths(); len(got) != 2 || got[0] != "keywords.1" || got[1] != "keywords.3" {
		t.Fatalf("unexpected paths: %v", got)
	}

	_, err = arr.Parse(lexmeta.WithFailFast(ctx, true), []any{1, 2})
	iss, _ = lexmeta.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("fail-fast should stop at first element, got %v", iss)
	}

	if _, err := arr.Parse(ctx, "a"); err == nil {
		t.Fatalf("scalar is not a list")
	}
}

func TestPromote(t *testing.T) {
	ctx := context.Background()
	inner := g.Object().Field("v", g.String()).Required().MustBuild()
	ad := g.Promote(inner.Adapter(), func(s string) any { return map[string]any{"v": s} })

	v, err := ad.Parse(ctx, "txt")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if m := v.(map[string]any); m["v"] != "txt" {
		t.Fatalf("promoted text lost: %v", m)
	}
	if _, err := ad.Parse(ctx, map[string]any{"v": "x"}); err != nil {
		t.Fatalf("object form: %v", err)
	}
	_, err = ad.Parse(ctx, 3)
	if code := firstCode(t, err); code != lexmeta.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %s", code)
	}
}

func TestPreprocess_ErrorAtField(t *testing.T) {
	ctx := context.Background()
	ad := g.Preprocess(func(_ context.Context, v any, at lexmeta.PathRef) (any, error) {
		if m, ok := v.(map[string]any); ok {
			return m["entries"], nil
		}
		return v, nil
	}, g.Int())

	v, err := ad.Parse(ctx, map[string]any{"entries": 3})
	if err != nil || v != 3 {
		t.Fatalf("unwrap failed: v=%v err=%v", v, err)
	}
	_, err = ad.ParseAt(ctx, map[string]any{"count": 3}, lexmeta.At("size"), nil)
	iss, _ := lexmeta.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "size" || iss[0].Code != lexmeta.CodeInvalidType {
		t.Fatalf("unexpected issues: %v", iss)
	}
}
