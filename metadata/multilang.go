package metadata

import (
	"context"

	"golang.org/x/text/language"

	lexmeta "github.com/spraakbanken/lexmeta"
)

var (
	engBase, _ = language.English.Base()
	sweBase, _ = language.Swedish.Base()
)

// MultiLang is a text given in English, Swedish or both. At least one side is
// always present. The zero value is not a valid MultiLang and only appears in
// a zero Record.
type MultiLang struct {
	eng, swe       string
	hasEng, hasSwe bool
}

// NewMultiLang builds a MultiLang from optional English and Swedish texts.
// It fails with a multilingual_empty issue when both are nil.
func NewMultiLang(eng, swe *string) (MultiLang, error) {
	if eng == nil && swe == nil {
		return MultiLang{}, lexmeta.Issues{lexmeta.IssueAt(lexmeta.Root(), lexmeta.CodeMultilingualEmpty, "", nil)}
	}
	var ml MultiLang
	if eng != nil {
		ml.eng, ml.hasEng = *eng, true
	}
	if swe != nil {
		ml.swe, ml.hasSwe = *swe, true
	}
	return ml, nil
}

// FromText promotes plain text: the same text fills both language slots.
func FromText(s string) MultiLang {
	return MultiLang{eng: s, swe: s, hasEng: true, hasSwe: true}
}

// ParseMultiLang accepts plain text or a mapping with eng/swe (or the
// english/swedish aliases) and returns the validated value.
func ParseMultiLang(ctx context.Context, raw any) (MultiLang, error) {
	v, err := multiLangText.Parse(ctx, raw)
	if err != nil {
		return MultiLang{}, err
	}
	return bindMultiLang(v), nil
}

// English returns the English text, if given.
func (m MultiLang) English() (string, bool) { return m.eng, m.hasEng }

// Swedish returns the Swedish text, if given.
func (m MultiLang) Swedish() (string, bool) { return m.swe, m.hasSwe }

// Get returns the text for the base language of tag (en-GB reads English).
func (m MultiLang) Get(tag language.Tag) (string, bool) {
	base, _ := tag.Base()
	switch base {
	case engBase:
		return m.English()
	case sweBase:
		return m.Swedish()
	}
	return "", false
}

// Tags lists the languages present, English first.
func (m MultiLang) Tags() []language.Tag {
	var tags []language.Tag
	if m.hasEng {
		tags = append(tags, language.English)
	}
	if m.hasSwe {
		tags = append(tags, language.Swedish)
	}
	return tags
}

// Best picks the text closest to the preferred languages. With no match it
// falls back to the first language present.
func (m MultiLang) Best(prefs ...language.Tag) string {
	tags := m.Tags()
	if len(tags) == 0 {
		return ""
	}
	_, idx, _ := language.NewMatcher(tags).Match(prefs...)
	s, _ := m.Get(tags[idx])
	return s
}

// IsZero reports whether no language is present.
func (m MultiLang) IsZero() bool { return !m.hasEng && !m.hasSwe }

func (m MultiLang) Equal(o MultiLang) bool { return m == o }

// String renders the English text, or the Swedish one when English is absent.
func (m MultiLang) String() string {
	if m.hasEng {
		return m.eng
	}
	return m.swe
}

// OutputForm is the serialized mapping: eng and swe, absent sides omitted.
func (m MultiLang) OutputForm() map[string]any {
	out := make(map[string]any, 2)
	if m.hasEng {
		out[keyEng] = m.eng
	}
	if m.hasSwe {
		out[keySwe] = m.swe
	}
	return out
}
