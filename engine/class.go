package engine

import (
	"fmt"

	"github.com/mirren/spellbound/engine/state"
	"github.com/mirren/spellbound/types"
)

// Rewards for a class where something new was learned.
const (
	classKnowledgeGain = 10
	classPointsGain    = 5
)

// ClassReport describes one attended class.
type ClassReport struct {
	AllKnown  bool // nothing left to teach
	Spell     types.SpellDef
	Knowledge int // knowledge gained
	Points    int // house points gained
}

// AttendClass teaches a random not-yet-known spell from the catalog and
// awards knowledge and house points. When the player already knows every
// spell the report says so and nothing changes.
func (e *Engine) AttendClass() (ClassReport, error) {
	if e.Player == nil {
		return ClassReport{}, ErrNoPlayer
	}

	var unlearned []types.SpellDef
	for _, s := range e.Spells.All() {
		if !state.Knows(e.Player, s.Name) {
			unlearned = append(unlearned, s)
		}
	}
	if len(unlearned) == 0 {
		return ClassReport{AllKnown: true}, nil
	}

	spell := unlearned[e.RNG.Intn(len(unlearned))]
	state.Learn(e.Player, spell.Name)
	state.GainKnowledge(e.Player, classKnowledgeGain)
	state.AwardPoints(e.Player, classPointsGain)

	return ClassReport{
		Spell:     spell,
		Knowledge: classKnowledgeGain,
		Points:    classPointsGain,
	}, nil
}

// PracticeReport describes one practice cast outside of combat.
type PracticeReport struct {
	Spell    types.SpellDef
	Hit      bool
	Restored int // utility casts: energy regained
}

// Practice casts a known spell outside combat: the cost is spent, the
// success roll happens, and a utility hit restores energy. Offensive and
// defensive spells have nothing to act on and just flash and fade.
func (e *Engine) Practice(name string) (PracticeReport, error) {
	if e.Player == nil {
		return PracticeReport{}, ErrNoPlayer
	}
	spell, err := e.Spells.Lookup(name)
	if err != nil {
		return PracticeReport{}, err
	}
	if !state.Knows(e.Player, spell.Name) {
		return PracticeReport{}, fmt.Errorf("%w: %s", ErrSpellNotKnown, spell.Name)
	}
	if !state.SpendEnergy(e.Player, spell.Cost) {
		return PracticeReport{}, fmt.Errorf("%w: %s costs %d", ErrNotEnoughEnergy, spell.Name, spell.Cost)
	}

	rep := PracticeReport{Spell: spell}
	if e.RNG.Chance(spell.Chance) {
		rep.Hit = true
		if spell.Category == types.Utility {
			before := e.Player.Energy
			state.RestoreEnergy(e.Player, spell.Power)
			rep.Restored = e.Player.Energy - before
		}
	}
	return rep, nil
}
