// Package actor models one duel participant with clamped resource pools.
// Actors are built fresh per duel and discarded when it resolves; the engine
// writes the player's final resources back to persistent state afterwards.
package actor

import "strings"

// Actor is a combat participant: the player or an opponent.
type Actor struct {
	Name      string
	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int

	known map[string]bool
	order []string // spell names in the order they were given
}

// New creates an actor at full health and energy with the given spell set.
func New(name string, maxHealth, maxEnergy int, spells []string) *Actor {
	a := &Actor{
		Name:      name,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Energy:    maxEnergy,
		MaxEnergy: maxEnergy,
		known:     make(map[string]bool, len(spells)),
	}
	for _, s := range spells {
		key := spellKey(s)
		if !a.known[key] {
			a.known[key] = true
			a.order = append(a.order, s)
		}
	}
	return a
}

// ApplyDamage reduces health by amount, clamped at 0.
// Non-positive amounts are a no-op.
func (a *Actor) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	a.Health -= amount
	if a.Health < 0 {
		a.Health = 0
	}
}

// Heal restores health, not exceeding max. Non-positive amounts are a no-op.
func (a *Actor) Heal(amount int) {
	if amount <= 0 {
		return
	}
	a.Health += amount
	if a.Health > a.MaxHealth {
		a.Health = a.MaxHealth
	}
}

// SpendEnergy deducts amount if the actor can pay it, atomically: on false
// the energy pool is unchanged.
func (a *Actor) SpendEnergy(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	if a.Energy < amount {
		return false
	}
	a.Energy -= amount
	return true
}

// RestoreEnergy restores energy, not exceeding max.
// Non-positive amounts are a no-op.
func (a *Actor) RestoreEnergy(amount int) {
	if amount <= 0 {
		return
	}
	a.Energy += amount
	if a.Energy > a.MaxEnergy {
		a.Energy = a.MaxEnergy
	}
}

// IsDefeated reports whether the actor's health has reached 0.
func (a *Actor) IsDefeated() bool {
	return a.Health == 0
}

// Knows reports whether the spell is in the actor's known set.
func (a *Actor) Knows(spell string) bool {
	return a.known[spellKey(spell)]
}

// Spells returns the actor's known spell names in the order they were given.
func (a *Actor) Spells() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func spellKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
