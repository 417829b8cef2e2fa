package dsl

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	lexmeta "github.com/spraakbanken/lexmeta"
	js "github.com/spraakbanken/lexmeta/jsonschema"
)

// String accepts Go strings only; numbers and booleans are not coerced.
func String() Adapter {
	return Adapter{
		parse: func(_ context.Context, v any, w walk) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, typeIssue(w.at, "string")
			}
			return s, nil
		},
		jsonSchema: func() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil },
	}
}

// Bool accepts Go booleans only.
func Bool() Adapter {
	return Adapter{
		parse: func(_ context.Context, v any, w walk) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, typeIssue(w.at, "boolean")
			}
			return b, nil
		},
		jsonSchema: func() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil },
	}
}

// Int accepts any Go integer, integral floats and integral json.Number
// values, and yields an int. Booleans are rejected.
func Int() Adapter {
	return Adapter{
		parse: func(_ context.Context, v any, w walk) (any, error) {
			n, ok := AsInt(v)
			if !ok {
				return nil, typeIssue(w.at, "integer")
			}
			return n, nil
		},
		jsonSchema: func() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil },
	}
}

// AsInt converts decoded numeric input into an int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), n <= math.MaxInt
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), n <= math.MaxInt
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return int(i), true
		}
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

// Literal accepts exactly one of the given strings. Other strings are
// reported as invalid_enum, other types as invalid_type.
func Literal(allowed ...string) Adapter {
	enum := make([]any, len(allowed))
	for i, a := range allowed {
		enum[i] = a
	}
	expected := strings.Join(quoteAll(allowed), " | ")
	return Adapter{
		parse: func(_ context.Context, v any, w walk) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, typeIssue(w.at, "string")
			}
			for _, a := range allowed {
				if s == a {
					return s, nil
				}
			}
			return nil, lexmeta.Issues{lexmeta.IssueAt(w.at, lexmeta.CodeInvalidEnum, "got "+strconv.Quote(s),
				map[string]string{"expected": expected, "value": s})}
		},
		jsonSchema: func() (*js.Schema, error) { return &js.Schema{Type: "string", Enum: enum}, nil },
	}
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
