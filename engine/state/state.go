// Package state holds the compiled game definitions and the player's
// persistent state, with the mutation helpers the engine uses between duels.
package state

import (
	"strings"

	"github.com/mirren/spellbound/types"
)

// Defs holds the immutable game definitions loaded from Lua.
// Slices preserve content-definition order.
type Defs struct {
	Game      types.GameDef
	Houses    []types.HouseDef
	Spells    []types.SpellDef
	Opponents []types.OpponentDef
	Questions []types.QuestionDef
	Events    []types.EventDef
}

// House returns the house definition with the given ID.
func (d *Defs) House(id string) (types.HouseDef, bool) {
	for _, h := range d.Houses {
		if h.ID == id {
			return h, true
		}
	}
	return types.HouseDef{}, false
}

// Opponent returns the opponent definition with the given ID.
func (d *Defs) Opponent(id string) (types.OpponentDef, bool) {
	for _, o := range d.Opponents {
		if o.ID == id {
			return o, true
		}
	}
	return types.OpponentDef{}, false
}

// NewPlayer creates a fresh student of the given house, at full health and
// energy, carrying the standard-issue kit and the starting spell.
func NewPlayer(name string, house types.HouseDef, startSpell string) *types.Player {
	p := &types.Player{
		Name:      name,
		House:     house.ID,
		Health:    house.MaxHealth,
		MaxHealth: house.MaxHealth,
		Energy:    house.MaxEnergy,
		MaxEnergy: house.MaxEnergy,
		Inventory: []string{"Wand", "Spellbook"},
	}
	if startSpell != "" {
		Learn(p, startSpell)
	}
	return p
}

// Knows reports whether the player has learned the spell.
func Knows(p *types.Player, spell string) bool {
	for _, s := range p.Spells {
		if strings.EqualFold(s, spell) {
			return true
		}
	}
	return false
}

// Learn adds a spell to the player's spellbook.
// Returns false if it was already known.
func Learn(p *types.Player, spell string) bool {
	if Knows(p, spell) {
		return false
	}
	p.Spells = append(p.Spells, spell)
	return true
}

// GainKnowledge adds knowledge points from attending classes.
func GainKnowledge(p *types.Player, amount int) {
	p.Knowledge += amount
}

// AwardPoints awards (or deducts) house points.
func AwardPoints(p *types.Player, points int) {
	p.HousePoints += points
}

// Heal restores health, capped at max.
func Heal(p *types.Player, amount int) {
	if amount <= 0 {
		return
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// RestoreEnergy restores energy, capped at max.
func RestoreEnergy(p *types.Player, amount int) {
	if amount <= 0 {
		return
	}
	p.Energy += amount
	if p.Energy > p.MaxEnergy {
		p.Energy = p.MaxEnergy
	}
}

// SpendEnergy deducts amount if the player can pay it, atomically.
func SpendEnergy(p *types.Player, amount int) bool {
	if amount < 0 {
		amount = 0
	}
	if p.Energy < amount {
		return false
	}
	p.Energy -= amount
	return true
}

// WriteBack records the player's resources as a duel left them,
// clamped into range.
func WriteBack(p *types.Player, health, energy int) {
	p.Health = clamp(health, 0, p.MaxHealth)
	p.Energy = clamp(energy, 0, p.MaxEnergy)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
