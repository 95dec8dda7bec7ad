package alias

import "strings"

// Resolver maps provider usernames to public display aliases. Athletes without a
// mapping are excluded from the board entirely, so lookups signal "unmapped"
// rather than erroring.
type Resolver struct {
	aliases map[string]string
}

// NewResolver builds a Resolver from a configured username→alias map. Keys are
// normalized once here (trim + lowercase); callers pass usernames as-is.
func NewResolver(mapping map[string]string) *Resolver {
	normalized := make(map[string]string, len(mapping))
	for k, v := range mapping {
		normalized[normalize(k)] = v
	}
	return &Resolver{aliases: normalized}
}

// Resolve returns the display alias for a username, or ok=false if unmapped.
func (r *Resolver) Resolve(username string) (alias string, ok bool) {
	alias, ok = r.aliases[normalize(username)]
	return alias, ok
}

// Len returns the number of configured mappings.
func (r *Resolver) Len() int {
	return len(r.aliases)
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
