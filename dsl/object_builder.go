package dsl

import (
	"context"
	"fmt"

	lexmeta "github.com/spraakbanken/lexmeta"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// DefaultExtraKey is the key under which passthrough objects store unknown
// keys in their parsed map, unless UnknownPassthrough names another one.
const DefaultExtraKey = "$extra"

type objectField struct {
	name       string
	ad         Adapter
	required   bool
	hasDefault bool
	def        any
}

// RefineFunc checks a successfully parsed object. at is the object's location;
// returned Issues are reported as-is, other errors become parse_error at at.
type RefineFunc func(ctx context.Context, m map[string]any, at lexmeta.PathRef) error

type objRefine struct {
	name string
	fn   RefineFunc
}

type objectBuilder struct {
	fields        []*objectField
	index         map[string]int
	unknownPolicy lexmeta.UnknownPolicy
	extraKey      string
	closed        bool
	description   string
	refines       []objRefine
}

type fieldStep struct {
	b *objectBuilder
	f *objectField
}

// Object creates a new object builder with safe defaults (UnknownStrict).
// Fields keep their declaration order, which is also the order of issues and
// of encoded output.
func Object() *objectBuilder {
	return &objectBuilder{
		index:         map[string]int{},
		unknownPolicy: lexmeta.UnknownStrict,
		extraKey:      DefaultExtraKey,
	}
}

// Field registers a field with its adapter. Registering the same name twice
// replaces the adapter but keeps the first position.
func (b *objectBuilder) Field(name string, ad Adapter) *fieldStep {
	if i, ok := b.index[name]; ok {
		f := b.fields[i]
		f.ad = ad
		return &fieldStep{b: b, f: f}
	}
	f := &objectField{name: name, ad: ad}
	b.index[name] = len(b.fields)
	b.fields = append(b.fields, f)
	return &fieldStep{b: b, f: f}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.f.required = true
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	f.f.required = false
	return f.b
}

// Default sets a default for the current field and exports it to JSON Schema.
// The default is parsed through the field adapter whenever it is applied.
func (f *fieldStep) Default(v any) *objectBuilder {
	f.f.required = false
	f.f.hasDefault = true
	f.f.def = v
	return f.b
}

func (f *fieldStep) Field(name string, ad Adapter) *fieldStep         { return f.b.Field(name, ad) }
func (f *fieldStep) UnknownStrict() *objectBuilder                    { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder                     { return f.b.UnknownStrip() }
func (f *fieldStep) Closed() *objectBuilder                           { return f.b.Closed() }
func (f *fieldStep) Describe(text string) *objectBuilder              { return f.b.Describe(text) }
func (f *fieldStep) Refine(name string, fn RefineFunc) *objectBuilder { return f.b.Refine(name, fn) }
func (f *fieldStep) Build() (*ObjectSchema, error)                    { return f.b.Build() }
func (f *fieldStep) MustBuild() *ObjectSchema                         { return f.b.MustBuild() }

func (f *fieldStep) UnknownPassthrough(target string) *objectBuilder {
	return f.b.UnknownPassthrough(target)
}

// UnknownStrict sets unknown policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = lexmeta.UnknownStrict
	return b
}

// UnknownStrip sets unknown policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = lexmeta.UnknownStrip
	return b
}

// UnknownPassthrough sets unknown policy to Passthrough. Unknown keys are
// collected into a map stored under target ("" keeps DefaultExtraKey).
func (b *objectBuilder) UnknownPassthrough(target string) *objectBuilder {
	b.unknownPolicy = lexmeta.UnknownPassthrough
	if target != "" {
		b.extraKey = target
	}
	return b
}

// Closed pins the builder's own unknown policy so that a policy carried by
// the context (lexmeta.WithUnknownPolicy) does not apply to this object.
func (b *objectBuilder) Closed() *objectBuilder {
	b.closed = true
	return b
}

// Describe sets the object description used in JSON Schema.
func (b *objectBuilder) Describe(text string) *objectBuilder {
	b.description = text
	return b
}

// Refine adds an object-level check. Refines run in registration order, after
// every field parsed cleanly.
func (b *objectBuilder) Refine(name string, fn RefineFunc) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns the compiled schema.
func (b *objectBuilder) Build() (*ObjectSchema, error) {
	for _, f := range b.fields {
		if f.name == "" {
			return nil, fmt.Errorf("dsl: object field with empty name")
		}
		if f.ad.parse == nil {
			return nil, fmt.Errorf("dsl: field %q has no adapter", f.name)
		}
		if f.name == b.extraKey {
			return nil, fmt.Errorf("dsl: field %q collides with the passthrough key", f.name)
		}
		if f.hasDefault {
			// defaults must satisfy their own field
			if _, err := f.ad.Parse(context.Background(), f.def); err != nil {
				return nil, fmt.Errorf("dsl: default of field %q: %w", f.name, err)
			}
		}
	}
	fields := make([]objectField, len(b.fields))
	names := make([]string, len(b.fields))
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		fields[i] = *f
		names[i] = f.name
		index[f.name] = i
	}
	return &ObjectSchema{
		fields:        fields,
		names:         names,
		index:         index,
		unknownPolicy: b.unknownPolicy,
		extraKey:      b.extraKey,
		closed:        b.closed,
		description:   b.description,
		refines:       append([]objRefine(nil), b.refines...),
	}, nil
}

// MustBuild is Build that panics on error. Use it for package-level schemas.
func (b *objectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (s *ObjectSchema) jsonSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(s.fields))
	var required []string
	for _, f := range s.fields {
		fs, err := f.ad.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
		if fs == nil {
			fs = &js.Schema{}
		}
		if f.hasDefault {
			fs.Default = f.def
		}
		props[f.name] = fs
		if f.required {
			required = append(required, f.name)
		}
	}
	out := &js.Schema{
		Type:        "object",
		Description: s.description,
		Properties:  props,
		Required:    required,
	}
	if s.unknownPolicy == lexmeta.UnknownStrict {
		out.AdditionalProperties = false
	}
	return out, nil
}
