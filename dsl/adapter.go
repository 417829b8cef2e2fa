package dsl

import (
	"context"

	lexmeta "github.com/spraakbanken/lexmeta"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// walk carries the absolute location of the value being parsed and the
// presence collector (nil when presence is not requested).
type walk struct {
	at lexmeta.PathRef
	pm lexmeta.PresenceMap
}

func (w walk) field(name string) walk { return walk{at: w.at.Field(name), pm: w.pm} }
func (w walk) index(i int) walk       { return walk{at: w.at.Index(i), pm: w.pm} }

func (w walk) mark(p lexmeta.Presence) {
	if w.pm != nil {
		w.pm[w.at.Pointer()] |= p
	}
}

// Adapter is the any-typed building block of the DSL. Every adapter reports
// issues at absolute paths, so nested objects never need to rebase them.
type Adapter struct {
	parse      func(ctx context.Context, v any, w walk) (any, error)
	jsonSchema func() (*js.Schema, error)
}

// Parse runs the adapter on v as if v were the whole document.
func (ad Adapter) Parse(ctx context.Context, v any) (any, error) {
	return ad.parse(ctx, v, walk{at: lexmeta.Root()})
}

// ParseAt runs the adapter on v located at at. pm may be nil.
func (ad Adapter) ParseAt(ctx context.Context, v any, at lexmeta.PathRef, pm lexmeta.PresenceMap) (any, error) {
	if at == nil {
		at = lexmeta.Root()
	}
	return ad.parse(ctx, v, walk{at: at, pm: pm})
}

// JSONSchema projects the adapter into JSON Schema.
func (ad Adapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// Nullable wraps an Adapter to accept nulls. When the input value is nil,
// parsing succeeds and returns nil.
func Nullable(ad Adapter) Adapter {
	prevParse := ad.parse
	prevJSON := ad.jsonSchema
	out := ad
	out.parse = func(ctx context.Context, v any, w walk) (any, error) {
		if v == nil {
			return nil, nil
		}
		return prevParse(ctx, v, w)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		if prevJSON == nil {
			return js.OrNull(nil), nil
		}
		s, err := prevJSON()
		if err != nil {
			return nil, err
		}
		return js.OrNull(s), nil
	}
	return out
}

// Nullable enables fluent chaining: dsl.String().Nullable()
func (ad Adapter) Nullable() Adapter { return Nullable(ad) }

// Describe attaches a description to the exported JSON Schema.
func (ad Adapter) Describe(text string) Adapter {
	prevJSON := ad.jsonSchema
	out := ad
	out.jsonSchema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevJSON != nil {
			ps, err := prevJSON()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		s.Description = text
		return s, nil
	}
	return out
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with CodeParseError.
func issuesFromErr(at lexmeta.PathRef, err error) lexmeta.Issues {
	if err == nil {
		return nil
	}
	if iss, ok := lexmeta.AsIssues(err); ok {
		return iss
	}
	it := lexmeta.IssueAt(at, lexmeta.CodeParseError, err.Error(), nil)
	it.Cause = err
	return lexmeta.Issues{it}
}

func typeIssue(at lexmeta.PathRef, expected string) lexmeta.Issues {
	return lexmeta.Issues{lexmeta.IssueAt(at, lexmeta.CodeInvalidType, "", map[string]string{"expected": expected})}
}
