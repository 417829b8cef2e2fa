package jsonschema

// Draft is the JSON Schema dialect the exported documents claim.
const Draft = "http://json-schema.org/draft-07/schema#"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`
	Enum    []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Null is the schema accepting only null.
func Null() *Schema { return &Schema{Type: "null"} }

// OrNull wraps s so that null is accepted as well. Defaults stay on the
// outer schema.
func OrNull(s *Schema) *Schema {
	if s == nil {
		s = &Schema{}
	}
	inner := *s
	inner.Default = nil
	inner.Description = ""
	return &Schema{Default: s.Default, Description: s.Description, OneOf: []*Schema{Null(), &inner}}
}
