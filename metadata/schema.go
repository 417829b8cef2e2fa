package metadata

import (
	"context"

	lexmeta "github.com/spraakbanken/lexmeta"
	"github.com/spraakbanken/lexmeta/dsl"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// Defaults applied to the nested descriptors.
const (
	DefaultType         = "lexicon"
	DefaultFormat       = "jsonl"
	DefaultLicence      = "CC BY 4.0"
	DefaultRestriction  = "attribution"
	DefaultAccess       = "https://spraakbanken.gu.se/karp?resource="
	DefaultOrganisation = "Språkbanken"
	DefaultEmail        = "sb-info@svenska.gu.se"
	DefaultContactName  = "Markus Forsberg"
)

const (
	keyEng     = "eng"
	keySwe     = "swe"
	keyEnglish = "english"
	keySwedish = "swedish"
	keyEntries = "entries"
)

// Record field names in declaration order.
const (
	FieldName             = "name"
	FieldShortDescription = "short_description"
	FieldType             = "type"
	FieldTrainingData     = "trainingdata"
	FieldUnlisted         = "unlisted"
	FieldSuccessors       = "successors"
	FieldLanguageCodes    = "language_codes"
	FieldSize             = "size"
	FieldInCollections    = "in_collections"
	FieldDownloads        = "downloads"
	FieldInterface        = "interface"
	FieldContactInfo      = "contact_info"
	FieldAnnotation       = "annotation"
	FieldKeywords         = "keywords"
	FieldCaveats          = "caveats"
	FieldReferences       = "references"
	FieldIntendedUses     = "intended_uses"
	FieldDescription      = "description"
)

var multiLangSchema = dsl.Object().
	Field(keyEng, dsl.String().Nullable()).
	Field(keySwe, dsl.String().Nullable()).
	Field(keyEnglish, dsl.String().Nullable().Describe("alias of eng")).
	Field(keySwedish, dsl.String().Nullable().Describe("alias of swe")).
	Closed().
	Refine("aliases agree", checkAliases).
	Refine("at least one language", checkLanguagePresent).
	Describe("text in English and/or Swedish").
	MustBuild()

// multiLangText accepts plain text or the multilingual mapping.
var multiLangText = dsl.Promote(multiLangSchema.Adapter(), func(s string) any {
	return map[string]any{keyEng: s, keySwe: s}
})

var downloadSchema = dsl.Object().
	Field("url", dsl.String()).Required().
	Field("type", dsl.String()).Default(DefaultType).
	Field("format", dsl.String()).Default(DefaultFormat).
	Field("info", dsl.String().Nullable()).Required().
	Field("licence", dsl.String()).Default(DefaultLicence).
	Field("restriction", dsl.String().Nullable()).Default(DefaultRestriction).
	MustBuild()

var interfaceSchema = dsl.Object().
	Field("access", dsl.String()).Default(DefaultAccess).
	Field("licence", dsl.String()).Default(DefaultLicence).
	Field("restriction", dsl.String()).Default(DefaultRestriction).
	MustBuild()

var affiliationSchema = dsl.Object().
	Field("organisation", dsl.String()).Default(DefaultOrganisation).
	Field("email", dsl.String()).Default(DefaultEmail).
	MustBuild()

var contactInfoSchema = dsl.Object().
	Field("name", dsl.String()).Default(DefaultContactName).
	Field("email", dsl.String()).Default(DefaultEmail).
	Field("affiliation", affiliationSchema.Adapter()).Required().
	MustBuild()

var sizeAdapter = dsl.Preprocess(unwrapSize, dsl.Int()).
	WithJSONSchema(func() (*js.Schema, error) {
		return &js.Schema{OneOf: []*js.Schema{
			{Type: "integer"},
			{
				Type:       "object",
				Properties: map[string]*js.Schema{keyEntries: {Type: "integer"}},
				Required:   []string{keyEntries},
			},
		}}, nil
	}).
	Describe("number of entries")

var textList = dsl.ArrayOf(dsl.String())

var recordSchema = dsl.Object().
	Field(FieldName, multiLangText).Required().
	Field(FieldShortDescription, multiLangText).Required().
	Field(FieldType, dsl.Literal(DefaultType)).Default(DefaultType).
	Field(FieldTrainingData, dsl.Bool().Nullable()).Required().
	Field(FieldUnlisted, dsl.Bool().Nullable()).Required().
	Field(FieldSuccessors, textList.Nullable()).Required().
	Field(FieldLanguageCodes, textList.Describe("ISO 639-3 codes")).Required().
	Field(FieldSize, sizeAdapter).Required().
	Field(FieldInCollections, textList.Nullable()).
	Field(FieldDownloads, dsl.ArrayOf(downloadSchema.Adapter()).Nullable()).
	Field(FieldInterface, dsl.ArrayOf(interfaceSchema.Adapter()).Nullable()).
	Field(FieldContactInfo, contactInfoSchema.Adapter()).Required().
	Field(FieldAnnotation, multiLangText.Nullable()).
	Field(FieldKeywords, textList.Nullable()).
	Field(FieldCaveats, multiLangText.Nullable()).
	Field(FieldReferences, textList.Nullable()).
	Field(FieldIntendedUses, multiLangText.Nullable()).
	Field(FieldDescription, multiLangText.Nullable()).
	MustBuild()

// unwrapSize turns {entries: N} into N. Keys next to entries are ignored.
func unwrapSize(_ context.Context, v any, at lexmeta.PathRef) (any, error) {
	m, ok := dsl.AsObject(v)
	if !ok {
		return v, nil
	}
	n, ok := m[keyEntries]
	if !ok {
		return nil, lexmeta.Issues{lexmeta.IssueAt(at, lexmeta.CodeInvalidType, "mapping without entries",
			map[string]string{"expected": "integer or {entries: integer}"})}
	}
	return n, nil
}

func checkAliases(_ context.Context, m map[string]any, at lexmeta.PathRef) error {
	var iss lexmeta.Issues
	for _, pair := range [][2]string{{keyEng, keyEnglish}, {keySwe, keySwedish}} {
		short, long := m[pair[0]], m[pair[1]]
		if short != nil && long != nil && short != long {
			iss = append(iss, lexmeta.IssueAt(at.Field(pair[1]), lexmeta.CodeInvalidType,
				pair[1]+" disagrees with "+pair[0], map[string]string{"expected": "the same text as " + pair[0]}))
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func checkLanguagePresent(_ context.Context, m map[string]any, at lexmeta.PathRef) error {
	for _, k := range []string{keyEng, keySwe, keyEnglish, keySwedish} {
		if m[k] != nil {
			return nil
		}
	}
	return lexmeta.Issues{lexmeta.IssueAt(at, lexmeta.CodeMultilingualEmpty, "", nil)}
}
