// Package dsl provides the small schema DSL the metadata shapes are declared
// with.
//
// # Overview
//
//   - Adapters: String(), Bool(), Int(), Literal(...), ArrayOf(elem), plus the
//     wrappers Nullable, Preprocess, Promote and Describe.
//   - Objects: Object().Field(name, ad).Required()/.Default(v), unknown-key
//     policy (UnknownStrict/UnknownStrip/UnknownPassthrough), Refine, then
//     Build/MustBuild. Fields keep declaration order.
//   - Issues: every adapter reports lexmeta.Issues at absolute dot paths
//     ("contact_info.affiliation.email", "downloads.0.url").
//   - Presence: ParseWithMeta records Seen/WasNull/DefaultApplied/Unknown per
//     JSON Pointer.
//   - JSON Schema: every adapter projects itself with JSONSchema().
//
// # Unknown keys
//
// An object uses its builder policy unless the context carries another one
// (lexmeta.WithUnknownPolicy), in which case the context wins. Objects built
// with Closed() ignore the context. Passthrough keys are returned as a map
// under ExtraKey().
//
// # Example
//
//	affiliation := dsl.Object().
//		Field("organisation", dsl.String()).Default("Språkbanken").
//		Field("email", dsl.String()).Default("sb-info@svenska.gu.se").
//		MustBuild()
//
//	m, err := affiliation.Parse(ctx, map[string]any{"email": "x@example.org"})
//	// m == {"organisation": "Språkbanken", "email": "x@example.org"}
//
// # JSON Schema output hints
//
//	// UnknownStrict => additionalProperties=false,
//	// UnknownStrip/UnknownPassthrough => additionalProperties omitted (true)
package dsl
