// Package duel resolves one turn-based duel between two actors. The duel is
// a small state machine driven by the player's submitted actions; the
// opponent replies through a pluggable policy. All randomness comes from the
// injected RNG, so a fixed seed reproduces every hit, miss, and damage roll.
package duel

import (
	"errors"
	"fmt"

	"github.com/mirren/spellbound/engine/actor"
	"github.com/mirren/spellbound/engine/rng"
	"github.com/mirren/spellbound/engine/spellbook"
	"github.com/mirren/spellbound/types"
)

// DamageSpread is the uniform variance band applied to offensive spell
// power, so identical casts don't deal identical damage.
const DamageSpread = 0.2

// DefaultMaxTurns bounds a duel that neither side can end (all-miss
// stalemates); reaching it resolves as Fled.
const DefaultMaxTurns = 30

// Result is the terminal outcome of a duel, from the player's perspective.
type Result string

const (
	Victory Result = "victory"
	Defeat  Result = "defeat"
	Fled    Result = "fled"
)

// Phase is the duel's current position in the turn protocol. Resolution is
// synchronous inside PlayerAction, so no resolving phase is ever observable.
type Phase int

const (
	AwaitingPlayer Phase = iota
	AwaitingOpponent
	Terminal
)

// Errors returned by PlayerAction. ErrDuelOver wraps ErrInvalidAction:
// submitting anything after Terminal is a caller error.
var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrDuelOver        = fmt.Errorf("%w: duel already resolved", ErrInvalidAction)
)

// Action is one player decision: cast a known spell, or flee.
type Action struct {
	Flee  bool
	Spell string
}

// Cast returns an action that casts the named spell.
func Cast(spell string) Action {
	return Action{Spell: spell}
}

// Flee returns the flee action.
func Flee() Action {
	return Action{Flee: true}
}

// Outcome summarizes a resolved duel. Turns counts completed full turns
// (player action + opponent action); fleeing on the first turn reports 0.
type Outcome struct {
	Result         Result
	Turns          int
	PlayerHealth   int
	OpponentHealth int
}

// Step describes one resolved action for presentation.
type Step struct {
	Caster    string
	Spell     string
	Category  types.SpellCategory
	Hit       bool
	Damage    int  // offensive hits: damage dealt after ward reduction
	Ward      int  // defensive hits: ward strength raised
	Restored  int  // utility hits: energy actually regained
	Forfeited bool // the actor had no payable spell and passed
}

// Report is what one PlayerAction call resolved: the player's step, the
// opponent's reply if the duel continued, and the outcome once terminal.
type Report struct {
	Steps   []Step
	Over    bool
	Outcome Outcome
}

// Duel holds the state of one combat encounter. It never reaches outside
// the two actors, the registry, and the RNG it was given.
type Duel struct {
	player   *actor.Actor
	opponent *actor.Actor
	policy   Policy
	reg      *spellbook.Registry
	rng      *rng.RNG
	maxTurns int

	phase Phase
	turns int

	// One-shot wards: raised by a defensive hit, consumed by the next
	// offensive hit against the owner, and lapsed after the foe's next
	// action either way.
	playerWard   int
	opponentWard int

	outcome Outcome
}

// New creates a duel in the AwaitingPlayer phase. maxTurns <= 0 selects
// DefaultMaxTurns.
func New(player, opponent *actor.Actor, policy Policy, reg *spellbook.Registry, r *rng.RNG, maxTurns int) *Duel {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Duel{
		player:   player,
		opponent: opponent,
		policy:   policy,
		reg:      reg,
		rng:      r,
		maxTurns: maxTurns,
	}
}

// Phase returns the duel's current phase.
func (d *Duel) Phase() Phase {
	return d.phase
}

// Turns returns the number of completed full turns.
func (d *Duel) Turns() int {
	return d.turns
}

// Player returns the player-side actor (for status display).
func (d *Duel) Player() *actor.Actor {
	return d.player
}

// Opponent returns the opponent actor (for status display).
func (d *Duel) Opponent() *actor.Actor {
	return d.opponent
}

// Outcome returns the terminal outcome and whether the duel has resolved.
func (d *Duel) Outcome() (Outcome, bool) {
	return d.outcome, d.phase == Terminal
}

// PlayerAction submits the player's action for this turn and resolves it,
// followed by the opponent's reply unless the duel ended mid-turn.
//
// A rejected action (unknown spell, spell the player doesn't know, or an
// unpayable cost) changes no state and consumes no turn: the duel stays in
// AwaitingPlayer and the caller re-prompts.
func (d *Duel) PlayerAction(a Action) (Report, error) {
	if d.phase == Terminal {
		return Report{}, ErrDuelOver
	}

	if a.Flee {
		d.finish(Fled)
		return Report{Over: true, Outcome: d.outcome}, nil
	}

	spell, err := d.reg.Lookup(a.Spell)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s", ErrInvalidAction, a.Spell)
	}
	if !d.player.Knows(spell.Name) {
		return Report{}, fmt.Errorf("%w: %s is not in your spellbook", ErrInvalidAction, spell.Name)
	}
	if !d.player.SpendEnergy(spell.Cost) {
		return Report{}, fmt.Errorf("%w: %s costs %d", ErrNotEnoughEnergy, spell.Name, spell.Cost)
	}

	var rep Report
	rep.Steps = append(rep.Steps, d.resolve(d.player, d.opponent, spell, &d.playerWard, &d.opponentWard))

	// Player's action resolved first, so victory takes precedence even if
	// both actors somehow fell in the same exchange.
	if d.opponent.IsDefeated() {
		d.finish(Victory)
		rep.Over, rep.Outcome = true, d.outcome
		return rep, nil
	}

	d.phase = AwaitingOpponent
	rep.Steps = append(rep.Steps, d.opponentTurn())

	if d.player.IsDefeated() {
		d.finish(Defeat)
		rep.Over, rep.Outcome = true, d.outcome
		return rep, nil
	}

	d.turns++
	if d.turns >= d.maxTurns {
		d.finish(Fled)
		rep.Over, rep.Outcome = true, d.outcome
		return rep, nil
	}

	d.phase = AwaitingPlayer
	return rep, nil
}

// opponentTurn asks the policy for a spell and resolves it. A policy that
// returns nothing — or names a spell the opponent can't actually pay for —
// forfeits the turn.
func (d *Duel) opponentTurn() Step {
	name, ok := d.policy.ChooseSpell(d.view(d.opponent, d.opponentWard), d.view(d.player, d.playerWard), d.rng)
	if ok {
		if spell, err := d.reg.Lookup(name); err == nil && d.opponent.Knows(spell.Name) && d.opponent.SpendEnergy(spell.Cost) {
			return d.resolve(d.opponent, d.player, spell, &d.opponentWard, &d.playerWard)
		}
	}
	// The foe's ward still lapses on a forfeited turn.
	d.playerWard = 0
	return Step{Caster: d.opponent.Name, Forfeited: true}
}

// resolve applies one already-paid cast: roll for success, apply the effect
// by category, and lapse the target's ward.
func (d *Duel) resolve(caster, target *actor.Actor, spell types.SpellDef, casterWard, targetWard *int) Step {
	step := Step{
		Caster:   caster.Name,
		Spell:    spell.Name,
		Category: spell.Category,
	}

	if d.rng.Chance(spell.Chance) {
		step.Hit = true
		switch spell.Category {
		case types.Offensive:
			dmg := d.rng.Vary(spell.Power, DamageSpread)
			if *targetWard > 0 {
				dmg -= *targetWard
				if dmg < 0 {
					dmg = 0
				}
			}
			target.ApplyDamage(dmg)
			step.Damage = dmg
		case types.Defensive:
			// One-shot: re-casting replaces, never stacks.
			*casterWard = spell.Power
			step.Ward = spell.Power
		case types.Utility:
			before := caster.Energy
			caster.RestoreEnergy(spell.Power)
			step.Restored = caster.Energy - before
		}
	}

	*targetWard = 0
	return step
}

func (d *Duel) finish(result Result) {
	d.phase = Terminal
	d.outcome = Outcome{
		Result:         result,
		Turns:          d.turns,
		PlayerHealth:   d.player.Health,
		OpponentHealth: d.opponent.Health,
	}
}

// view builds the read-only snapshot policies see.
func (d *Duel) view(a *actor.Actor, ward int) View {
	return View{
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
		Energy:    a.Energy,
		MaxEnergy: a.MaxEnergy,
		Warded:    ward > 0,
		Spells:    a.Spells(),
	}
}
