package source

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// KeyOrder returns the preferred key order of the mapping at path (dot
// separated, list indices omitted). Keys it does not name follow in sorted
// order. A nil KeyOrder sorts every mapping.
type KeyOrder func(path string) []string

// Encode writes v in the given format. Mappings must be map[string]any; lists
// may be []any or []string.
func Encode(w io.Writer, v any, f Format, order KeyOrder) error {
	switch f {
	case FormatJSON:
		return encodeJSON(w, v, order)
	case FormatYAML, "":
		return encodeYAML(w, v, order)
	}
	return fmt.Errorf("unsupported format %q", f)
}

// MarshalYAML is Encode into a byte slice with FormatYAML.
func MarshalYAML(v any, order KeyOrder) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeYAML(&buf, v, order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orderedKeys(m map[string]any, path string, order KeyOrder) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	if order != nil {
		for _, k := range order(path) {
			if _, ok := m[k]; ok {
				keys = append(keys, k)
				seen[k] = struct{}{}
			}
		}
	}
	rest := make([]string, 0, len(m)-len(keys))
	for k := range m {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func encodeYAML(w io.Writer, v any, order KeyOrder) error {
	n, err := toNode(v, "", order)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

func toNode(v any, path string, order KeyOrder) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range orderedKeys(t, path, order) {
			cn, err := toNode(t[k], childPath(path, k), order)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, cn)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range t {
			cn, err := toNode(it, path, order)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, cn)
		}
		return n, nil
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range t {
			cn := &yaml.Node{}
			if err := cn.Encode(s); err != nil {
				return nil, err
			}
			n.Content = append(n.Content, cn)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, fmt.Errorf("%s: %w", pathOrRoot(path), err)
		}
		return n, nil
	}
}

func encodeJSON(w io.Writer, v any, order KeyOrder) error {
	var compact bytes.Buffer
	if err := writeJSON(&compact, v, "", order); err != nil {
		return err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to indent JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func writeJSON(buf *bytes.Buffer, v any, path string, order KeyOrder) error {
	switch t := v.(type) {
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range orderedKeys(t, path, order) {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := j.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeJSON(buf, t[k], childPath(path, k), order); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, it := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, it, path, order); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := j.Marshal(v)
		if err != nil {
			return fmt.Errorf("%s: %w", pathOrRoot(path), err)
		}
		buf.Write(b)
		return nil
	}
}
