// Package allowlist restricts the service to a configured set of units (guilds).
package allowlist

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// List is an immutable set of allowed unit identifiers.
// An empty list allows every unit.
type List struct {
	units map[uint64]struct{}
}

// New builds a list from unit identifiers. Blank entries are ignored.
func New(units []string) *List {
	l := &List{units: make(map[uint64]struct{}, len(units))}
	for _, unit := range units {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}
		l.units[xxhash.Sum64String(unit)] = struct{}{}
	}

	return l
}

// Allowed reports whether the unit may use the service.
func (l *List) Allowed(unit string) bool {
	if l == nil || len(l.units) == 0 {
		return true
	}

	_, ok := l.units[xxhash.Sum64String(unit)]
	return ok
}

// Len returns the number of configured units.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.units)
}
