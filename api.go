package lexmeta

import "context"

// EncodeMode exposes canonical vs preserving output intent at call sites.
type EncodeMode int

const (
	// EncodeCanonical emits every field, with nulls for absent optional ones.
	EncodeCanonical EncodeMode = iota
	// EncodePreserve emits only the keys the input carried.
	EncodePreserve
)

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
	_ctxKeyUnknownPolicy
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// WithUnknownPolicy overrides the unknown-key policy of every object schema
// reached during the parse.
func WithUnknownPolicy(ctx context.Context, p UnknownPolicy) context.Context {
	return context.WithValue(ctx, _ctxKeyUnknownPolicy, p)
}

// UnknownPolicyFrom returns the policy set with WithUnknownPolicy, if any.
func UnknownPolicyFrom(ctx context.Context) (UnknownPolicy, bool) {
	p, ok := ctx.Value(_ctxKeyUnknownPolicy).(UnknownPolicy)
	return p, ok
}

// WithParseOpt projects options onto the context consumed by schema
// implementations.
func WithParseOpt(ctx context.Context, opts ...ParseOpt) (context.Context, ParseOpt) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	if opt.Unknown != UnknownStrict {
		ctx = WithUnknownPolicy(ctx, opt.Unknown)
	}
	return ctx, opt
}
