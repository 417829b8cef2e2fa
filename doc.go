// Package lexmeta provides:
//
// - The error model shared by the metadata validator: Issues carrying a dot-qualified
// field path, a stable code, and a translated message
// - Parse options: unknown-key policy (strict/strip/passthrough) and fail-fast
// - Presence metadata (seen/null/defaulted/unknown) for preserving re-encoding
//
// Design policy:
// - Keep only the error model and options in the root package.
// - Put the schema DSL under dsl/, the lexical resource record under metadata/,
// document decoding under source/ and the CLI under cmd/lexmeta.
//
// Typical usage:
//
//	raw, err := source.ReadFile("saldo.yaml")
//	rec, err := metadata.Parse(ctx, raw)
//	if iss, ok := lexmeta.AsIssues(err); ok {
//	    for _, it := range iss {
//	        fmt.Println(it)
//	    }
//	}
//	out := metadata.ToOutputForm(rec)
package lexmeta
