// Package spellbook provides the read-only spell catalog. The registry is
// built once from compiled content and never mutated afterwards.
package spellbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mirren/spellbound/types"
)

// ErrUnknownSpell is returned by Lookup for names absent from the catalog.
var ErrUnknownSpell = errors.New("unknown spell")

// Registry is a name-indexed, definition-ordered spell catalog.
type Registry struct {
	spells []types.SpellDef
	byName map[string]int
}

// NewRegistry builds a registry from spell definitions. Definition order is
// preserved for All(). Duplicate names are an error.
func NewRegistry(defs []types.SpellDef) (*Registry, error) {
	r := &Registry{
		spells: make([]types.SpellDef, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	copy(r.spells, defs)
	for i, s := range r.spells {
		key := nameKey(s.Name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("duplicate spell %q", s.Name)
		}
		r.byName[key] = i
	}
	return r, nil
}

// Lookup returns the spell with the given name (case-insensitive).
// Returns ErrUnknownSpell if absent.
func (r *Registry) Lookup(name string) (types.SpellDef, error) {
	i, ok := r.byName[nameKey(name)]
	if !ok {
		return types.SpellDef{}, fmt.Errorf("%w: %s", ErrUnknownSpell, name)
	}
	return r.spells[i], nil
}

// All returns every spell in definition order. The returned slice is a copy.
func (r *Registry) All() []types.SpellDef {
	out := make([]types.SpellDef, len(r.spells))
	copy(out, r.spells)
	return out
}

// Len returns the number of spells in the catalog.
func (r *Registry) Len() int {
	return len(r.spells)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
