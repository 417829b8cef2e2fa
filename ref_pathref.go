package lexmeta

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds field paths in a chain-safe way and creates Issues.
// String renders the dot-qualified form used in issues, Pointer the JSON
// Pointer form used as PresenceMap key.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	String() string
	Pointer() string
	Segments() []string
	Issue(code, msg string, kv ...any) Issue
}

// Root returns the path of the document itself.
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a dot-qualified path ("contact_info.affiliation").
func At(path string) PathRef {
	if path == "" {
		return Root()
	}
	return &pathRef{parts: strings.Split(path, ".")}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), name)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Segments() []string { return append([]string{}, p.parts...) }

func (p *pathRef) String() string { return strings.Join(p.parts, ".") }

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	esc := make([]string, len(p.parts))
	for i, s := range p.parts {
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		esc[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
	}
	return "/" + strings.Join(esc, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.String(), Segments: p.Segments(), Code: code, Message: msg, Params: m}
}
