package lexmeta

import "fmt"

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrict      UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                            // Drop unknown keys.
	UnknownPassthrough                      // Preserve unknown keys next to the typed fields.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrip:
		return "strip"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "strict"
	}
}

// ParseUnknownPolicy resolves a policy name. "permissive" is accepted as an
// alias of "passthrough".
func ParseUnknownPolicy(name string) (UnknownPolicy, error) {
	switch name {
	case "", "strict":
		return UnknownStrict, nil
	case "strip":
		return UnknownStrip, nil
	case "passthrough", "permissive":
		return UnknownPassthrough, nil
	default:
		return UnknownStrict, fmt.Errorf("unknown policy %q (expected strict, strip or passthrough)", name)
	}
}

// PresenceOpt configures presence collection for WithMeta-style parsing.
type PresenceOpt struct {
	Include []string
	Exclude []string
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	// Unknown overrides the schema's unknown-key policy. The zero value keeps
	// the closed schema.
	Unknown  UnknownPolicy
	Presence PresenceOpt
	FailFast bool
}
