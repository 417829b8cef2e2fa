package lexmeta

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType       = "invalid_type"
	CodeInvalidEnum       = "invalid_enum"
	CodeRequired          = "required"
	CodeUnknownKey        = "unknown_key"
	CodeDuplicateKey      = "duplicate_key"
	CodeMultilingualEmpty = "multilingual_empty"
	CodeParseError        = "parse_error"
)

// Kind groups issue codes into the error taxonomy reported to catalogue editors.
type Kind int

const (
	KindUnknown Kind = iota
	KindSchemaViolation
	KindTypeMismatch
	KindMissingRequiredField
	KindMultilingualEmpty
)

func (k Kind) String() string {
	switch k {
	case KindSchemaViolation:
		return "SchemaViolation"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindMissingRequiredField:
		return "MissingRequiredField"
	case KindMultilingualEmpty:
		return "MultilingualEmptyError"
	default:
		return "Unknown"
	}
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dot-qualified field path (for example: contact_info.affiliation.email).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: what was expected.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"key":"foo"}) for i18n and logs.
	Params map[string]any
	// Segments is Path split into field names and list indices. Issues built
	// by hand may leave it nil, in which case Path is split on dots.
	Segments []string
}

// Kind maps the issue code onto the error taxonomy.
func (it Issue) Kind() Kind {
	switch it.Code {
	case CodeUnknownKey, CodeDuplicateKey:
		return KindSchemaViolation
	case CodeInvalidType, CodeInvalidEnum, CodeParseError:
		return KindTypeMismatch
	case CodeRequired:
		return KindMissingRequiredField
	case CodeMultilingualEmpty:
		return KindMultilingualEmpty
	default:
		return KindUnknown
	}
}

// Nested reports whether the issue was raised inside a nested object or list
// (contact_info.affiliation, downloads.0.url, ...).
func (it Issue) Nested() bool {
	if it.Segments != nil {
		return len(it.Segments) > 1
	}
	return strings.Contains(it.Path, ".")
}

// Field returns the top-level field the issue belongs to.
func (it Issue) Field() string {
	if len(it.Segments) > 0 {
		return it.Segments[0]
	}
	if i := strings.IndexByte(it.Path, '.'); i >= 0 {
		return it.Path[:i]
	}
	return it.Path
}

func (it Issue) String() string {
	p := it.Path
	if p == "" {
		p = "<root>"
	}
	if it.Hint != "" {
		return fmt.Sprintf("%s: %s (%s)", p, it.Message, it.Hint)
	}
	return fmt.Sprintf("%s: %s", p, it.Message)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		p := it.Path
		if p == "" {
			p = "<root>"
		}
		// e.g. invalid_type at size
		fmt.Fprintf(b, "%s at %s", it.Code, p)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Paths returns the issue paths in report order.
func (iss Issues) Paths() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Path
	}
	return out
}

// ByKind keeps the issues of the given kind.
func (iss Issues) ByKind(k Kind) Issues {
	var out Issues
	for _, it := range iss {
		if it.Kind() == k {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
