package metadata

import (
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// JSONSchema describes the accepted input form of a metadata document. The
// canonical output of ToOutputForm validates against it as well.
func JSONSchema() (*js.Schema, error) {
	s, err := recordSchema.JSONSchema()
	if err != nil {
		return nil, err
	}
	s.SchemaURI = js.Draft
	s.Title = "Lexical resource metadata"
	return s, nil
}
