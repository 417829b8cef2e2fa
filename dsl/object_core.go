package dsl

import (
	"context"
	"reflect"
	"sort"

	lexmeta "github.com/spraakbanken/lexmeta"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// ObjectSchema is a compiled object shape. It is immutable and safe for
// concurrent use.
type ObjectSchema struct {
	fields        []objectField
	names         []string
	index         map[string]int
	unknownPolicy lexmeta.UnknownPolicy
	extraKey      string
	closed        bool
	description   string
	refines       []objRefine
}

// FieldNames returns the declared fields in declaration order.
func (s *ObjectSchema) FieldNames() []string { return append([]string(nil), s.names...) }

// Has reports whether name is a declared field.
func (s *ObjectSchema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// ExtraKey is the map key holding passthrough keys in parsed output.
func (s *ObjectSchema) ExtraKey() string { return s.extraKey }

// Default returns the declared default of a field.
func (s *ObjectSchema) Default(name string) (any, bool) {
	i, ok := s.index[name]
	if !ok || !s.fields[i].hasDefault {
		return nil, false
	}
	return s.fields[i].def, true
}

// Adapter exposes the schema as a field adapter for nesting.
func (s *ObjectSchema) Adapter() Adapter {
	return Adapter{
		parse: func(ctx context.Context, v any, w walk) (any, error) {
			m, err := s.parse(ctx, v, w)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		jsonSchema: s.jsonSchema,
	}
}

// JSONSchema projects the object into JSON Schema.
func (s *ObjectSchema) JSONSchema() (*js.Schema, error) { return s.jsonSchema() }

// Parse validates v and returns the normalized map. Failures are
// lexmeta.Issues: unknown keys first (sorted), then fields in declaration
// order, then refine issues.
func (s *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	return s.parse(ctx, v, walk{at: lexmeta.Root()})
}

// ParseAt is Parse for an object located at at inside a larger document.
func (s *ObjectSchema) ParseAt(ctx context.Context, v any, at lexmeta.PathRef) (map[string]any, error) {
	if at == nil {
		at = lexmeta.Root()
	}
	return s.parse(ctx, v, walk{at: at})
}

// ParseWithMeta is Parse that also records presence flags for every pointer
// the parse visited.
func (s *ObjectSchema) ParseWithMeta(ctx context.Context, v any) (lexmeta.Decoded[map[string]any], error) {
	pm := lexmeta.PresenceMap{"/": lexmeta.PresenceSeen}
	m, err := s.parse(ctx, v, walk{at: lexmeta.Root(), pm: pm})
	if err != nil {
		return lexmeta.Decoded[map[string]any]{Presence: pm}, err
	}
	return lexmeta.Decoded[map[string]any]{Value: m, Presence: pm}, nil
}

func (s *ObjectSchema) policy(ctx context.Context) lexmeta.UnknownPolicy {
	if s.closed {
		return s.unknownPolicy
	}
	if p, ok := lexmeta.UnknownPolicyFrom(ctx); ok {
		return p
	}
	return s.unknownPolicy
}

func (s *ObjectSchema) parse(ctx context.Context, v any, w walk) (map[string]any, error) {
	src, ok := AsObject(v)
	if !ok {
		return nil, typeIssue(w.at, "object")
	}
	failFast := lexmeta.IsFailFast(ctx)
	out := make(map[string]any, len(s.fields))
	var iss lexmeta.Issues

	extra, uiss := s.collectUnknown(ctx, src, w)
	iss = lexmeta.AppendIssues(iss, uiss...)
	if failFast && len(iss) > 0 {
		return nil, iss
	}

	for i := range s.fields {
		f := &s.fields[i]
		fw := w.field(f.name)
		raw, present := src[f.name]
		switch {
		case present:
			fw.mark(lexmeta.PresenceSeen)
			if raw == nil {
				fw.mark(lexmeta.PresenceWasNull)
			}
			val, err := f.ad.parse(ctx, raw, fw)
			if err != nil {
				iss = lexmeta.AppendIssues(iss, issuesFromErr(fw.at, err)...)
				if failFast {
					return nil, iss
				}
				continue
			}
			out[f.name] = val
		case f.hasDefault:
			// default internals are not part of the input, so no presence below this key
			val, err := f.ad.parse(ctx, f.def, walk{at: fw.at})
			if err != nil {
				iss = lexmeta.AppendIssues(iss, issuesFromErr(fw.at, err)...)
				if failFast {
					return nil, iss
				}
				continue
			}
			fw.mark(lexmeta.PresenceDefaultApplied)
			out[f.name] = val
		case f.required:
			iss = lexmeta.AppendIssues(iss, lexmeta.IssueAt(fw.at, lexmeta.CodeRequired, "", map[string]string{"field": f.name}))
			if failFast {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	for _, r := range s.refines {
		if err := r.fn(ctx, out, w.at); err != nil {
			iss = lexmeta.AppendIssues(iss, issuesFromErr(w.at, err)...)
			if failFast {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if extra != nil {
		out[s.extraKey] = extra
	}
	return out, nil
}

// collectUnknown handles keys that are not declared fields, in key order.
func (s *ObjectSchema) collectUnknown(ctx context.Context, src map[string]any, w walk) (map[string]any, lexmeta.Issues) {
	uks := make([]string, 0)
	for k := range src {
		if _, known := s.index[k]; !known {
			uks = append(uks, k)
		}
	}
	if len(uks) == 0 {
		return nil, nil
	}
	sort.Strings(uks)

	var (
		iss   lexmeta.Issues
		extra map[string]any
	)
	policy := s.policy(ctx)
	for _, k := range uks {
		kw := w.field(k)
		switch policy {
		case lexmeta.UnknownStrict:
			iss = lexmeta.AppendIssues(iss, lexmeta.IssueAt(kw.at, lexmeta.CodeUnknownKey, "", map[string]string{"key": k}))
			if lexmeta.IsFailFast(ctx) {
				return nil, iss
			}
		case lexmeta.UnknownStrip:
			kw.mark(lexmeta.PresenceUnknown)
		case lexmeta.UnknownPassthrough:
			kw.mark(lexmeta.PresenceUnknown | lexmeta.PresenceSeen)
			if extra == nil {
				extra = make(map[string]any, len(uks))
			}
			extra[k] = src[k]
		}
	}
	return extra, iss
}

// AsObject accepts map[string]any directly and any other map keyed by
// strings through reflection.
func AsObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
