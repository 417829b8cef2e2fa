package metadata_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spraakbanken/lexmeta/metadata"
)

func validateAgainstSchema(t *testing.T, doc any) *gojsonschema.Result {
	t.Helper()
	sch, err := metadata.JSONSchema()
	require.NoError(t, err)
	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(sch), gojsonschema.NewGoLoader(doc))
	require.NoError(t, err)
	return res
}

func TestJSONSchema_Header(t *testing.T) {
	sch, err := metadata.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", sch.SchemaURI)
	assert.Equal(t, "object", sch.Type)
	assert.Equal(t, false, sch.AdditionalProperties)
	assert.Equal(t, []string{
		"name", "short_description", "trainingdata", "unlisted",
		"successors", "language_codes", "size", "contact_info",
	}, sch.Required)
	assert.Equal(t, "lexicon", sch.Properties["type"].Default)
}

func TestJSONSchema_AcceptsInputAndOutputForms(t *testing.T) {
	for name, doc := range map[string]map[string]any{"minimal": minimal(), "full": full()} {
		t.Run(name, func(t *testing.T) {
			res := validateAgainstSchema(t, doc)
			assert.True(t, res.Valid(), "%v", res.Errors())

			r, err := metadata.Parse(context.Background(), doc)
			require.NoError(t, err)
			res = validateAgainstSchema(t, metadata.ToOutputForm(r))
			assert.True(t, res.Valid(), "%v", res.Errors())
		})
	}
}

func TestJSONSchema_RejectsUnknownKey(t *testing.T) {
	doc := minimal()
	doc["homepage"] = "x"
	res := validateAgainstSchema(t, doc)
	assert.False(t, res.Valid())
}
