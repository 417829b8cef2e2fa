// Package metadata validates and normalizes the metadata documents that
// describe lexical resources.
//
// A document is decoded elsewhere (see package source) and handed to Parse as
// a loosely typed mapping. Parse returns an immutable Record or
// lexmeta.Issues listing every violation with a dot-qualified path:
//
//	r, err := metadata.Parse(ctx, doc)
//	if iss, ok := lexmeta.AsIssues(err); ok {
//	    for _, it := range iss {
//	        fmt.Println(it) // contact_info.affiliation.email: invalid type, expected string
//	    }
//	}
//
// Normalization rules:
//   - size accepts N or {entries: N}; output always uses {entries: N}.
//   - name, short_description, annotation, caveats, intended_uses and
//     description accept plain text, which fills both languages.
//   - nested descriptors get their defaults (licence "CC BY 4.0" and so on),
//     but contact_info and its affiliation must be given.
//
// Unknown keys are rejected unless lexmeta.ParseOpt.Unknown selects strip or
// passthrough. Multilingual values never accept keys besides eng, swe and
// their long aliases.
package metadata
