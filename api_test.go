package lexmeta_test

import (
	"context"
	"testing"

	lexmeta "github.com/spraakbanken/lexmeta"
)

func TestWithParseOpt_ProjectsOntoContext(t *testing.T) {
	ctx, opt := lexmeta.WithParseOpt(context.Background(),
		lexmeta.ParseOpt{Unknown: lexmeta.UnknownStrip},
		lexmeta.ParseOpt{Unknown: lexmeta.UnknownPassthrough, FailFast: true})
	if !opt.FailFast || opt.Unknown != lexmeta.UnknownPassthrough {
		t.Fatalf("last option must win, got %+v", opt)
	}
	if !lexmeta.IsFailFast(ctx) {
		t.Fatalf("fail-fast not set on context")
	}
	if p, ok := lexmeta.UnknownPolicyFrom(ctx); !ok || p != lexmeta.UnknownPassthrough {
		t.Fatalf("policy not set on context: %v %v", p, ok)
	}
}

func TestWithParseOpt_ZeroValueLeavesContextAlone(t *testing.T) {
	ctx, _ := lexmeta.WithParseOpt(context.Background())
	if lexmeta.IsFailFast(ctx) {
		t.Fatalf("fail-fast must be off by default")
	}
	if _, ok := lexmeta.UnknownPolicyFrom(ctx); ok {
		t.Fatalf("strict must not override the schema policy")
	}
}

func TestParseUnknownPolicy(t *testing.T) {
	for name, want := range map[string]lexmeta.UnknownPolicy{
		"":            lexmeta.UnknownStrict,
		"strict":      lexmeta.UnknownStrict,
		"strip":       lexmeta.UnknownStrip,
		"passthrough": lexmeta.UnknownPassthrough,
		"permissive":  lexmeta.UnknownPassthrough,
	} {
		got, err := lexmeta.ParseUnknownPolicy(name)
		if err != nil || got != want {
			t.Fatalf("%q: want %v, got %v (%v)", name, want, got, err)
		}
	}
	if _, err := lexmeta.ParseUnknownPolicy("lenient"); err == nil {
		t.Fatalf("expected error for unknown policy name")
	}
	if lexmeta.UnknownStrip.String() != "strip" {
		t.Fatalf("unexpected String() %q", lexmeta.UnknownStrip.String())
	}
}

func TestPathRef_StringAndPointer(t *testing.T) {
	p := lexmeta.Root().Field("downloads").Index(1).Field("url")
	if p.String() != "downloads.1.url" {
		t.Fatalf("unexpected string %q", p.String())
	}
	if p.Pointer() != "/downloads/1/url" {
		t.Fatalf("unexpected pointer %q", p.Pointer())
	}
	if lexmeta.Root().Pointer() != "/" || lexmeta.Root().String() != "" {
		t.Fatalf("unexpected root rendering")
	}
	if got := lexmeta.Root().Field("a/b~c").Pointer(); got != "/a~1b~0c" {
		t.Fatalf("pointer escaping: %q", got)
	}
	base := lexmeta.At("contact_info")
	_ = base.Field("name")
	if base.Field("email").String() != "contact_info.email" {
		t.Fatalf("PathRef must not share state between branches")
	}
	it := p.Issue(lexmeta.CodeInvalidType, "bad url", "expected", "string")
	if it.Path != "downloads.1.url" || it.Params["expected"] != "string" {
		t.Fatalf("unexpected issue %+v", it)
	}
}

func TestPresenceMap(t *testing.T) {
	pm := lexmeta.PresenceMap{
		"/":             lexmeta.PresenceSeen,
		"/type":         lexmeta.PresenceDefaultApplied,
		"/unlisted":     lexmeta.PresenceSeen | lexmeta.PresenceWasNull,
		"/contact_info": lexmeta.PresenceSeen,
	}
	if !pm.DefaultOnly("/type") || pm.DefaultOnly("/unlisted") {
		t.Fatalf("DefaultOnly misreports")
	}
	if !pm.Seen("/unlisted") || pm.Seen("/type") {
		t.Fatalf("Seen misreports")
	}
	f := lexmeta.FilterPresence(pm, lexmeta.PresenceOpt{Include: []string{"/contact_info", "/type"}})
	if len(f) != 2 {
		t.Fatalf("include filter: %v", f)
	}
	f = lexmeta.FilterPresence(pm, lexmeta.PresenceOpt{Exclude: []string{"/type"}})
	if _, ok := f["/type"]; ok || len(f) != 3 {
		t.Fatalf("exclude filter: %v", f)
	}
	if lexmeta.FilterPresence(nil, lexmeta.PresenceOpt{}) != nil {
		t.Fatalf("nil map must stay nil")
	}
}
