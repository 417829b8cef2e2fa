package metadata

import (
	"strconv"

	lexmeta "github.com/spraakbanken/lexmeta"
)

var objectKeyOrder = map[string][]string{
	"":                         recordSchema.FieldNames(),
	FieldContactInfo:           contactInfoSchema.FieldNames(),
	"contact_info.affiliation": affiliationSchema.FieldNames(),
	FieldDownloads:             downloadSchema.FieldNames(),
	FieldInterface:             interfaceSchema.FieldNames(),
	FieldSize:                  {keyEntries},
}

var multiLangKeyOrder = []string{keyEng, keySwe}

// FieldOrder returns the key order of the object at path in the output form.
// path is dot-qualified without list indices ("", "contact_info",
// "downloads"). Multilingual values report eng, swe. Unknown paths return nil.
func FieldOrder(path string) []string {
	if o, ok := objectKeyOrder[path]; ok {
		return o
	}
	switch path {
	case FieldName, FieldShortDescription, FieldAnnotation, FieldCaveats, FieldIntendedUses, FieldDescription:
		return multiLangKeyOrder
	}
	return nil
}

// ToOutputForm serializes a Record into the canonical mapping: every
// top-level field is present (null when absent), size is wrapped as
// {entries: N} and multilingual values become {eng, swe}.
func ToOutputForm(r Record) map[string]any {
	out := map[string]any{
		FieldName:             r.Name.OutputForm(),
		FieldShortDescription: r.ShortDescription.OutputForm(),
		FieldType:             r.Type,
		FieldTrainingData:     boolOrNil(r.TrainingData),
		FieldUnlisted:         boolOrNil(r.Unlisted),
		FieldSuccessors:       strListOrNil(r.Successors),
		FieldLanguageCodes:    strListOrNil(r.LanguageCodes),
		FieldSize:             map[string]any{keyEntries: r.Size},
		FieldInCollections:    strListOrNil(r.InCollections),
		FieldDownloads:        nil,
		FieldInterface:        nil,
		FieldContactInfo:      r.ContactInfo.outputForm(),
		FieldAnnotation:       multiLangOrNil(r.Annotation),
		FieldKeywords:         strListOrNil(r.Keywords),
		FieldCaveats:          multiLangOrNil(r.Caveats),
		FieldReferences:       strListOrNil(r.References),
		FieldIntendedUses:     multiLangOrNil(r.IntendedUses),
		FieldDescription:      multiLangOrNil(r.Description),
	}
	if r.Downloads != nil {
		l := make([]any, len(r.Downloads))
		for i, d := range r.Downloads {
			l[i] = d.outputForm()
		}
		out[FieldDownloads] = l
	}
	if r.Interface != nil {
		l := make([]any, len(r.Interface))
		for i, it := range r.Interface {
			l[i] = it.outputForm()
		}
		out[FieldInterface] = l
	}
	addExtra(out, r.Extra)
	return out
}

// EncodeWithDecoded renders a decoded record. EncodeCanonical equals
// ToOutputForm. EncodePreserve keeps only the keys the input carried, at the
// top level and inside contact_info, downloads and interface, so a rewritten
// file keeps its original key set. Without presence data it falls back to the
// canonical form.
func EncodeWithDecoded(dm lexmeta.Decoded[Record], mode lexmeta.EncodeMode) map[string]any {
	out := ToOutputForm(dm.Value)
	if mode != lexmeta.EncodePreserve || dm.Presence == nil {
		return out
	}
	pm := dm.Presence
	keepSeen(out, pm, "")
	if ci, ok := out[FieldContactInfo].(map[string]any); ok {
		keepSeen(ci, pm, "/"+FieldContactInfo)
		if af, ok := ci["affiliation"].(map[string]any); ok {
			keepSeen(af, pm, "/"+FieldContactInfo+"/affiliation")
		}
	}
	for _, list := range []string{FieldDownloads, FieldInterface} {
		l, _ := out[list].([]any)
		for i, el := range l {
			if m, ok := el.(map[string]any); ok {
				keepSeen(m, pm, "/"+list+"/"+strconv.Itoa(i))
			}
		}
	}
	return out
}

func keepSeen(m map[string]any, pm lexmeta.PresenceMap, base string) {
	for k := range m {
		if !pm.Seen(base + "/" + k) {
			delete(m, k)
		}
	}
}

func (d Download) outputForm() map[string]any {
	out := map[string]any{
		"url":         d.URL,
		"type":        d.Type,
		"format":      d.Format,
		"info":        strOrNil(d.Info),
		"licence":     d.Licence,
		"restriction": strOrNil(d.Restriction),
	}
	addExtra(out, d.Extra)
	return out
}

func (i Interface) outputForm() map[string]any {
	out := map[string]any{
		"access":      i.Access,
		"licence":     i.Licence,
		"restriction": i.Restriction,
	}
	addExtra(out, i.Extra)
	return out
}

func (a Affiliation) outputForm() map[string]any {
	out := map[string]any{
		"organisation": a.Organisation,
		"email":        a.Email,
	}
	addExtra(out, a.Extra)
	return out
}

func (c ContactInfo) outputForm() map[string]any {
	out := map[string]any{
		"name":        c.Name,
		"email":       c.Email,
		"affiliation": c.Affiliation.outputForm(),
	}
	addExtra(out, c.Extra)
	return out
}

func addExtra(out, extra map[string]any) {
	for k, v := range extra {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
}

func boolOrNil(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func strListOrNil(l []string) any {
	if l == nil {
		return nil
	}
	return append([]string{}, l...)
}

func multiLangOrNil(m *MultiLang) any {
	if m == nil {
		return nil
	}
	return m.OutputForm()
}
