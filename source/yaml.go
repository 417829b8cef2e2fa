package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	lexmeta "github.com/spraakbanken/lexmeta"
)

// DuplicateKeyError reports a key given twice in the same mapping. Line and
// column are 1-based and only known for YAML input.
type DuplicateKeyError struct {
	Key       string
	Path      string // dot path of the mapping holding the key ("" for the root)
	FirstLine int
	FirstCol  int
	Line      int
	Col       int

	parent []string
}

func (e *DuplicateKeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
	}
	return fmt.Sprintf("duplicate JSON key %q in %s", e.Key, pathOrRoot(e.Path))
}

// Issues reports the duplicate as a validation issue at the key's path.
func (e *DuplicateKeyError) Issues() lexmeta.Issues {
	hint := ""
	if e.Line > 0 {
		hint = fmt.Sprintf("line %d, first at line %d", e.Line, e.FirstLine)
	}
	at := lexmeta.At(e.Path)
	if e.parent != nil {
		at = lexmeta.Root()
		for _, seg := range e.parent {
			at = at.Field(seg)
		}
	}
	it := lexmeta.IssueAt(at.Field(e.Key), lexmeta.CodeDuplicateKey, hint, map[string]string{"key": e.Key})
	it.Cause = e
	return lexmeta.Issues{it}
}

func pathOrRoot(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}

// StrictYAMLReader decodes a YAML stream through yaml.Node so that duplicate
// keys are detected with positions. Documents come back as JSON-like Go values
// (map[string]any, []any, string, bool, int64, float64, nil).
type StrictYAMLReader struct {
	dec *yaml.Decoder
}

// NewStrictYAMLReader constructs a StrictYAMLReader.
func NewStrictYAMLReader(r io.Reader) *StrictYAMLReader {
	return &StrictYAMLReader{dec: yaml.NewDecoder(r)}
}

// Next returns the next document, or (nil, io.EOF) when the stream is
// exhausted. An empty document yields nil.
func (s *StrictYAMLReader) Next() (any, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	return nodeToValue(root.Content[0], nil)
}

// DecodeYAML reads exactly one YAML document. An empty stream yields nil, a
// stream with several documents is an error.
func DecodeYAML(r io.Reader) (any, error) {
	rd := NewStrictYAMLReader(r)
	doc, err := rd.Next()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if _, err := rd.Next(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("expected a single YAML document, found several")
	}
	return doc, nil
}

// maxYAMLNodes bounds the number of nodes a document may expand to once
// aliases are resolved. Metadata documents are a few hundred nodes.
const maxYAMLNodes = 100_000

var (
	// ErrAliasCycle is returned for an anchor that refers to itself.
	ErrAliasCycle = errors.New("YAML anchor contains itself")
	// ErrExcessiveAliasing is returned when aliases expand a document beyond
	// maxYAMLNodes nodes.
	ErrExcessiveAliasing = errors.New("excessive YAML aliasing")
)

// nodeWalker converts a yaml.Node tree. It keeps the aliases being expanded
// on the current branch and the number of nodes produced so far.
type nodeWalker struct {
	expanding map[*yaml.Node]bool
	nodes     int
}

func nodeToValue(n *yaml.Node, path []string) (any, error) {
	w := &nodeWalker{expanding: map[*yaml.Node]bool{}}
	return w.value(n, path)
}

func (w *nodeWalker) value(n *yaml.Node, path []string) (any, error) {
	if n == nil {
		return nil, nil
	}
	w.nodes++
	if w.nodes > maxYAMLNodes {
		return nil, fmt.Errorf("%s: %w", pathOrRoot(strings.Join(path, ".")), ErrExcessiveAliasing)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.value(n.Content[0], path)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		if w.expanding[n.Alias] {
			return nil, fmt.Errorf("%s: anchor %q: %w", pathOrRoot(strings.Join(path, ".")), n.Value, ErrAliasCycle)
		}
		w.expanding[n.Alias] = true
		defer delete(w.expanding, n.Alias)
		return w.value(n.Alias, path)
	case yaml.MappingNode:
		return w.mapping(n, path)
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.value(c, append(path[:len(path):len(path)], strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	default:
		return nil, nil
	}
}

// mapping converts a mapping node. Merge keys (<<) contribute the keys of the
// merged mappings that the mapping does not set itself; with a list of
// mappings the earlier ones win.
func (w *nodeWalker) mapping(n *yaml.Node, path []string) (any, error) {
	m := make(map[string]any, len(n.Content)/2)
	first := make(map[string][2]int, len(n.Content)/2)
	var merged map[string]any
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		v := n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			mv, err := w.mergeValue(v, path)
			if err != nil {
				return nil, err
			}
			if merged == nil {
				merged = map[string]any{}
			}
			for mk, val := range mv {
				if _, ok := merged[mk]; !ok {
					merged[mk] = val
				}
			}
			continue
		}
		// non-string scalar keys (1, true) are taken verbatim
		key := k.Value
		if pos, dup := first[key]; dup {
			return nil, &DuplicateKeyError{
				Key:       key,
				Path:      strings.Join(path, "."),
				FirstLine: pos[0],
				FirstCol:  pos[1],
				Line:      k.Line,
				Col:       k.Column,
				parent:    append([]string{}, path...),
			}
		}
		first[key] = [2]int{k.Line, k.Column}
		val, err := w.value(v, append(path[:len(path):len(path)], key))
		if err != nil {
			return nil, err
		}
		m[key] = val
	}
	for k, val := range merged {
		if _, ok := m[k]; !ok {
			m[k] = val
		}
	}
	return m, nil
}

// mergeValue resolves the value of a merge key into one mapping.
func (w *nodeWalker) mergeValue(v *yaml.Node, path []string) (map[string]any, error) {
	var parts []*yaml.Node
	if v.Kind == yaml.SequenceNode {
		parts = v.Content
	} else {
		parts = []*yaml.Node{v}
	}
	out := map[string]any{}
	for _, p := range parts {
		pv, err := w.value(p, path)
		if err != nil {
			return nil, err
		}
		pm, ok := pv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: line %d: merge key expects a mapping or a list of mappings",
				pathOrRoot(strings.Join(path, ".")), v.Line)
		}
		for k, val := range pm {
			if _, set := out[k]; !set {
				out[k] = val
			}
		}
	}
	return out, nil
}

func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		// int64 avoids overflow surprises; the schema narrows it later
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return i
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}
