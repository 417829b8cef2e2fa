package metadata

import (
	"context"

	lexmeta "github.com/spraakbanken/lexmeta"
)

// Parse validates a decoded document and builds the Record. raw is what a
// YAML or JSON decoder yields: maps keyed by strings, []any lists and scalar
// values. Every violation is reported in the returned lexmeta.Issues unless
// the options ask for fail-fast.
func Parse(ctx context.Context, raw any, opts ...lexmeta.ParseOpt) (Record, error) {
	ctx, _ = lexmeta.WithParseOpt(ctx, opts...)
	m, err := recordSchema.Parse(ctx, raw)
	if err != nil {
		return Record{}, err
	}
	return bindRecord(m), nil
}

// ParseWithMeta is Parse that also reports which keys the input carried.
func ParseWithMeta(ctx context.Context, raw any, opts ...lexmeta.ParseOpt) (lexmeta.Decoded[Record], error) {
	ctx, opt := lexmeta.WithParseOpt(ctx, opts...)
	dm, err := recordSchema.ParseWithMeta(ctx, raw)
	pm := lexmeta.FilterPresence(dm.Presence, opt.Presence)
	if err != nil {
		return lexmeta.Decoded[Record]{Presence: pm}, err
	}
	return lexmeta.Decoded[Record]{Value: bindRecord(dm.Value), Presence: pm}, nil
}

// FieldNames lists the record fields in declaration order.
func FieldNames() []string { return recordSchema.FieldNames() }
