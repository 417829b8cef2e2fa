package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// DecodeJSON reads one JSON document with go-json. Numbers are kept as
// json.Number; duplicate keys are a *DuplicateKeyError. Trailing data after
// the document is an error.
func DecodeJSON(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	tr := &tokenReader{dec: dec}
	v, err := tr.value(nil)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected data after the JSON document")
	}
	return v, nil
}

type tokenReader struct {
	dec *j.Decoder
}

func (t *tokenReader) value(path []string) (any, error) {
	tok, err := t.dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return t.object(path)
		case '[':
			return t.array(path)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	default:
		// string, json.Number, bool, nil
		return v, nil
	}
}

func (t *tokenReader) object(path []string) (any, error) {
	m := map[string]any{}
	for t.dec.More() {
		tok, err := t.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		if _, dup := m[key]; dup {
			return nil, &DuplicateKeyError{Key: key, Path: strings.Join(path, "."), parent: append([]string{}, path...)}
		}
		val, err := t.value(append(path[:len(path):len(path)], key))
		if err != nil {
			return nil, err
		}
		m[key] = val
	}
	if _, err := t.dec.Token(); err != nil { // '}'
		return nil, err
	}
	return m, nil
}

func (t *tokenReader) array(path []string) (any, error) {
	arr := []any{}
	for i := 0; t.dec.More(); i++ {
		val, err := t.value(append(path[:len(path):len(path)], strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := t.dec.Token(); err != nil { // ']'
		return nil, err
	}
	return arr, nil
}
