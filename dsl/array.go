package dsl

import (
	"context"
	"reflect"

	lexmeta "github.com/spraakbanken/lexmeta"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// ArrayOf builds an adapter for lists whose elements all satisfy elem.
// The parsed value is a non-nil []any, so an empty input list stays empty.
// Element issues are collected per index unless fail-fast is active.
func ArrayOf(elem Adapter) Adapter {
	return Adapter{
		parse: func(ctx context.Context, v any, w walk) (any, error) {
			items, ok := asList(v)
			if !ok {
				return nil, typeIssue(w.at, "array")
			}
			out := make([]any, 0, len(items))
			var iss lexmeta.Issues
			for i, it := range items {
				ew := w.index(i)
				ew.mark(lexmeta.PresenceSeen)
				if it == nil {
					ew.mark(lexmeta.PresenceWasNull)
				}
				val, err := elem.parse(ctx, it, ew)
				if err != nil {
					iss = lexmeta.AppendIssues(iss, issuesFromErr(ew.at, err)...)
					if lexmeta.IsFailFast(ctx) {
						return nil, iss
					}
					continue
				}
				out = append(out, val)
			}
			if len(iss) > 0 {
				return nil, iss
			}
			return out, nil
		},
		jsonSchema: func() (*js.Schema, error) {
			es, err := elem.JSONSchema()
			if err != nil {
				return nil, err
			}
			return &js.Schema{Type: "array", Items: es}, nil
		},
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		// bytes are scalars, not lists
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
