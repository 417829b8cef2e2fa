package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// Supported lists the languages of the built-in dictionary, the first one is
// the fallback.
var Supported = []language.Tag{language.English, language.Swedish}

var matcher = language.NewMatcher(Supported)

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang language.Tag }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.base(code)
	if exp := data["expected"]; exp != "" {
		if t.lang == language.Swedish {
			msg += ", förväntade " + exp
		} else {
			msg += ", expected " + exp
		}
	}
	return msg
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case language.Swedish:
		switch code {
		case "invalid_type":
			return "ogiltig typ"
		case "invalid_enum":
			return "otillåtet värde"
		case "required":
			return "obligatoriskt fält saknas"
		case "unknown_key":
			return "okänt fält är inte tillåtet"
		case "duplicate_key":
			return "fältet förekommer flera gånger"
		case "multilingual_empty":
			return "minst ett språk måste anges"
		case "parse_error":
			return "tolkningsfel"
		}
	default:
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_enum":
			return "value not permitted"
		case "required":
			return "field required"
		case "unknown_key":
			return "extra field not permitted"
		case "duplicate_key":
			return "duplicate key"
		case "multilingual_empty":
			return "at least one language must be given"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: language.English}
)

// SetLanguage switches the built-in Translator language. Any BCP 47 tag is
// accepted ("sv", "sv-SE", "en-GB"); tags that match neither English nor
// Swedish fall back to English.
func SetLanguage(tag string) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		t = language.English
	}
	_, idx, conf := matcher.Match(t)
	lang := language.English
	if conf != language.No {
		lang = Supported[idx]
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// Language returns the language of the built-in translator, or und when a
// custom Translator is installed.
func Language() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	if dt, ok := currentTranslator.(dictTranslator); ok {
		return dt.lang
	}
	return language.Und
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: language.English}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
