package duel

import (
	"fmt"

	"github.com/mirren/spellbound/engine/rng"
	"github.com/mirren/spellbound/engine/spellbook"
	"github.com/mirren/spellbound/types"
)

// View is the read-only snapshot of an actor that policies decide from.
type View struct {
	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int
	Warded    bool
	Spells    []string
}

// Policy selects the opponent's action each turn. It must pick a spell the
// actor knows and can pay for, or return false to forfeit the turn.
type Policy interface {
	ChooseSpell(self, foe View, r *rng.RNG) (string, bool)
}

// PolicyFor returns the named policy backed by the given registry.
// Known names: "random", "aggressive", "cunning".
func PolicyFor(name string, reg *spellbook.Registry) (Policy, error) {
	switch name {
	case "random":
		return randomPolicy{reg}, nil
	case "aggressive":
		return aggressivePolicy{reg}, nil
	case "cunning":
		return cunningPolicy{reg}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

// payable returns the defs of self's spells it can currently pay for,
// in loadout order.
func payable(reg *spellbook.Registry, self View) []types.SpellDef {
	var out []types.SpellDef
	for _, name := range self.Spells {
		spell, err := reg.Lookup(name)
		if err != nil {
			continue
		}
		if spell.Cost <= self.Energy {
			out = append(out, spell)
		}
	}
	return out
}

// strongest returns the highest-power spell of the given category, ties
// broken by loadout order. ok is false if none match.
func strongest(spells []types.SpellDef, cat types.SpellCategory) (types.SpellDef, bool) {
	var best types.SpellDef
	found := false
	for _, s := range spells {
		if s.Category != cat {
			continue
		}
		if !found || s.Power > best.Power {
			best = s
			found = true
		}
	}
	return best, found
}

// randomPolicy picks uniformly among payable spells — the training-dummy
// temperament.
type randomPolicy struct {
	reg *spellbook.Registry
}

func (p randomPolicy) ChooseSpell(self, foe View, r *rng.RNG) (string, bool) {
	options := payable(p.reg, self)
	if len(options) == 0 {
		return "", false
	}
	return options[r.Intn(len(options))].Name, true
}

// aggressivePolicy always throws its strongest payable offensive spell,
// falling back to a random payable spell when it can't afford any.
type aggressivePolicy struct {
	reg *spellbook.Registry
}

func (p aggressivePolicy) ChooseSpell(self, foe View, r *rng.RNG) (string, bool) {
	options := payable(p.reg, self)
	if len(options) == 0 {
		return "", false
	}
	if best, ok := strongest(options, types.Offensive); ok {
		return best.Name, true
	}
	return options[r.Intn(len(options))].Name, true
}

// cunningPolicy wards when hurt and exposed, recovers energy when drained,
// and otherwise attacks with its strongest payable offensive spell.
type cunningPolicy struct {
	reg *spellbook.Registry
}

func (p cunningPolicy) ChooseSpell(self, foe View, r *rng.RNG) (string, bool) {
	options := payable(p.reg, self)
	if len(options) == 0 {
		return "", false
	}

	hurt := self.Health*2 < self.MaxHealth
	if hurt && !self.Warded {
		if ward, ok := strongest(options, types.Defensive); ok {
			return ward.Name, true
		}
	}

	drained := self.Energy*3 < self.MaxEnergy
	if drained {
		if restore, ok := strongest(options, types.Utility); ok {
			return restore.Name, true
		}
	}

	if best, ok := strongest(options, types.Offensive); ok {
		return best.Name, true
	}
	return options[r.Intn(len(options))].Name, true
}
