package lexmeta

import "github.com/spraakbanken/lexmeta/i18n"

// IssueAt creates an Issue at the given path with a translated message for
// code. data feeds both the translator and Issue.Params.
func IssueAt(p PathRef, code, hint string, data map[string]string) Issue {
	it := Issue{Path: p.String(), Segments: p.Segments(), Code: code, Message: i18n.T(code, data), Hint: hint}
	if len(data) > 0 {
		it.Params = make(map[string]any, len(data))
		for k, v := range data {
			it.Params[k] = v
		}
	}
	return it
}
