package lexmeta

import "strings"

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
	PresenceUnknown                             // Key is not part of the schema (stripped or passed through).
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// DefaultOnly reports whether the value at ptr was materialized by a default
// and never appeared in the input.
func (pm PresenceMap) DefaultOnly(ptr string) bool {
	p := pm[ptr]
	return p&PresenceDefaultApplied != 0 && p&PresenceSeen == 0 && p&PresenceWasNull == 0
}

// Seen reports whether the key at ptr appeared in the input (possibly as null).
func (pm PresenceMap) Seen(ptr string) bool { return pm[ptr]&PresenceSeen != 0 }

// Decoded carries the parsed value along with presence metadata.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}

// FilterPresence keeps only the pointers selected by the include/exclude
// prefixes. With no filters configured the map is returned unchanged.
func FilterPresence(pm PresenceMap, popt PresenceOpt) PresenceMap {
	if pm == nil {
		return nil
	}
	if len(popt.Include) == 0 && len(popt.Exclude) == 0 {
		return pm
	}

	shouldInclude := func(path string) bool {
		if len(popt.Include) > 0 {
			ok := false
			for _, p := range popt.Include {
				if strings.HasPrefix(path, p) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		for _, p := range popt.Exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}

	filtered := make(PresenceMap, len(pm))
	for k, v := range pm {
		if shouldInclude(k) {
			filtered[k] = v
		}
	}
	return filtered
}
