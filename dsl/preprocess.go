package dsl

import (
	"context"

	lexmeta "github.com/spraakbanken/lexmeta"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// PreprocessFunc rewrites a raw value before the wrapped adapter sees it.
type PreprocessFunc func(ctx context.Context, v any, at lexmeta.PathRef) (any, error)

// Preprocess runs fn on the raw input and hands its result to ad. Errors from
// fn are reported at the field itself. The JSON Schema stays that of ad unless
// overridden with WithJSONSchema.
func Preprocess(fn PreprocessFunc, ad Adapter) Adapter {
	out := ad
	out.parse = func(ctx context.Context, v any, w walk) (any, error) {
		nv, err := fn(ctx, v, w.at)
		if err != nil {
			return nil, issuesFromErr(w.at, err)
		}
		return ad.parse(ctx, nv, w)
	}
	return out
}

// WithJSONSchema replaces the exported schema of ad.
func (ad Adapter) WithJSONSchema(fn func() (*js.Schema, error)) Adapter {
	out := ad
	out.jsonSchema = fn
	return out
}

// Promote accepts either a plain string or whatever ad accepts. Strings are
// turned into ad's input form by promote before parsing; values of any other
// type are an invalid_type issue.
func Promote(ad Adapter, promote func(string) any) Adapter {
	return Adapter{
		parse: func(ctx context.Context, v any, w walk) (any, error) {
			switch t := v.(type) {
			case string:
				return ad.parse(ctx, promote(t), w)
			case nil:
				return nil, typeIssue(w.at, "string or object")
			}
			if _, ok := AsObject(v); ok {
				return ad.parse(ctx, v, w)
			}
			return nil, typeIssue(w.at, "string or object")
		},
		jsonSchema: func() (*js.Schema, error) {
			inner, err := ad.JSONSchema()
			if err != nil {
				return nil, err
			}
			return &js.Schema{OneOf: []*js.Schema{{Type: "string"}, inner}}, nil
		},
	}
}
