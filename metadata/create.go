package metadata

import (
	"context"
	"strings"

	lexmeta "github.com/spraakbanken/lexmeta"
)

// MissingFieldsError reports the required fields a default record cannot
// fill. It wraps the underlying Issues.
type MissingFieldsError struct {
	Fields []string
	Issues lexmeta.Issues
}

func (e *MissingFieldsError) Error() string {
	return "default record is incomplete, required fields without default: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return e.Issues }

// CreateDefault builds the output form of a record made only of defaults.
// Several record fields are required and have no default, so with the current
// schema this returns a *MissingFieldsError naming them in declaration order.
func CreateDefault(ctx context.Context) (map[string]any, error) {
	r, err := Parse(ctx, map[string]any{})
	if err == nil {
		return ToOutputForm(r), nil
	}
	iss, ok := lexmeta.AsIssues(err)
	if !ok {
		return nil, err
	}
	var fields []string
	for _, it := range iss.ByKind(lexmeta.KindMissingRequiredField) {
		fields = append(fields, it.Field())
	}
	if len(fields) == 0 {
		return nil, err
	}
	return nil, &MissingFieldsError{Fields: fields, Issues: iss}
}
