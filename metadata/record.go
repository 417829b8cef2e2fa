package metadata

import (
	"github.com/czcorpus/cnc-gokit/collections"

	"github.com/spraakbanken/lexmeta/dsl"
)

// Record is the validated metadata of one lexical resource. Optional values
// are pointers or nil slices; a nil slice means the field was null or absent,
// while an empty list stays a non-nil empty slice.
type Record struct {
	Name             MultiLang
	ShortDescription MultiLang
	Type             string
	TrainingData     *bool
	Unlisted         *bool
	Successors       []string
	LanguageCodes    []string
	Size             int
	InCollections    []string
	Downloads        []Download
	Interface        []Interface
	ContactInfo      ContactInfo
	Annotation       *MultiLang
	Keywords         []string
	Caveats          *MultiLang
	References       []string
	IntendedUses     *MultiLang
	Description      *MultiLang

	// Extra holds unknown top-level keys when parsing in passthrough mode.
	Extra map[string]any
}

// Download describes one downloadable distribution of the resource.
type Download struct {
	URL         string
	Type        string
	Format      string
	Info        *string
	Licence     string
	Restriction *string
	Extra       map[string]any
}

// Interface describes one online interface to the resource.
type Interface struct {
	Access      string
	Licence     string
	Restriction string
	Extra       map[string]any
}

type Affiliation struct {
	Organisation string
	Email        string
	Extra        map[string]any
}

type ContactInfo struct {
	Name        string
	Email       string
	Affiliation Affiliation
	Extra       map[string]any
}

// The bind helpers read maps produced by the compiled schemas, so every
// value already has the expected dynamic type.

func bindRecord(m map[string]any) Record {
	return Record{
		Name:             bindMultiLang(m[FieldName]),
		ShortDescription: bindMultiLang(m[FieldShortDescription]),
		Type:             str(m, FieldType),
		TrainingData:     boolPtr(m, FieldTrainingData),
		Unlisted:         boolPtr(m, FieldUnlisted),
		Successors:       strList(m, FieldSuccessors),
		LanguageCodes:    strList(m, FieldLanguageCodes),
		Size:             m[FieldSize].(int),
		InCollections:    strList(m, FieldInCollections),
		Downloads:        objList(m, FieldDownloads, bindDownload),
		Interface:        objList(m, FieldInterface, bindInterface),
		ContactInfo:      bindContactInfo(m[FieldContactInfo].(map[string]any)),
		Annotation:       multiLangPtr(m, FieldAnnotation),
		Keywords:         strList(m, FieldKeywords),
		Caveats:          multiLangPtr(m, FieldCaveats),
		References:       strList(m, FieldReferences),
		IntendedUses:     multiLangPtr(m, FieldIntendedUses),
		Description:      multiLangPtr(m, FieldDescription),
		Extra:            extra(m),
	}
}

func bindDownload(m map[string]any) Download {
	return Download{
		URL:         str(m, "url"),
		Type:        str(m, "type"),
		Format:      str(m, "format"),
		Info:        strPtr(m, "info"),
		Licence:     str(m, "licence"),
		Restriction: strPtr(m, "restriction"),
		Extra:       extra(m),
	}
}

func bindInterface(m map[string]any) Interface {
	return Interface{
		Access:      str(m, "access"),
		Licence:     str(m, "licence"),
		Restriction: str(m, "restriction"),
		Extra:       extra(m),
	}
}

func bindAffiliation(m map[string]any) Affiliation {
	return Affiliation{
		Organisation: str(m, "organisation"),
		Email:        str(m, "email"),
		Extra:        extra(m),
	}
}

func bindContactInfo(m map[string]any) ContactInfo {
	return ContactInfo{
		Name:        str(m, "name"),
		Email:       str(m, "email"),
		Affiliation: bindAffiliation(m["affiliation"].(map[string]any)),
		Extra:       extra(m),
	}
}

// bindMultiLang resolves the english/swedish aliases onto eng/swe.
func bindMultiLang(v any) MultiLang {
	m, _ := v.(map[string]any)
	var ml MultiLang
	for _, k := range []string{keyEng, keyEnglish} {
		if s, ok := m[k].(string); ok {
			ml.eng, ml.hasEng = s, true
			break
		}
	}
	for _, k := range []string{keySwe, keySwedish} {
		if s, ok := m[k].(string); ok {
			ml.swe, ml.hasSwe = s, true
			break
		}
	}
	return ml
}

func multiLangPtr(m map[string]any, k string) *MultiLang {
	if m[k] == nil {
		return nil
	}
	ml := bindMultiLang(m[k])
	return &ml
}

func str(m map[string]any, k string) string {
	s, _ := m[k].(string)
	return s
}

func strPtr(m map[string]any, k string) *string {
	if s, ok := m[k].(string); ok {
		return &s
	}
	return nil
}

func boolPtr(m map[string]any, k string) *bool {
	if b, ok := m[k].(bool); ok {
		return &b
	}
	return nil
}

func strList(m map[string]any, k string) []string {
	l, ok := m[k].([]any)
	if !ok {
		return nil
	}
	if len(l) == 0 {
		return []string{}
	}
	return collections.SliceMap(l, func(v any, _ int) string { return v.(string) })
}

func objList[T any](m map[string]any, k string, bind func(map[string]any) T) []T {
	l, ok := m[k].([]any)
	if !ok {
		return nil
	}
	if len(l) == 0 {
		return []T{}
	}
	return collections.SliceMap(l, func(v any, _ int) T { return bind(v.(map[string]any)) })
}

func extra(m map[string]any) map[string]any {
	e, _ := m[dsl.DefaultExtraKey].(map[string]any)
	return e
}
