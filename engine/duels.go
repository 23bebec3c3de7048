package engine

import (
	"errors"
	"fmt"

	"github.com/mirren/spellbound/engine/actor"
	"github.com/mirren/spellbound/engine/duel"
	"github.com/mirren/spellbound/engine/state"
	"github.com/mirren/spellbound/types"
)

// Duel aftermath tuning, per the academy rules: glory for a win, shame for
// a loss, and the infirmary patches everyone up a little.
const (
	duelVictoryPoints  = 20
	duelDefeatPoints   = -10
	duelRecoverHealth  = 30
	duelRecoverEnergy  = 30
	duelDefaultMaxTurn = duel.DefaultMaxTurns
)

// ErrDuelNotOver is returned by ResolveDuel before the duel reaches a
// terminal outcome.
var ErrDuelNotOver = errors.New("duel not yet resolved")

// Opponents returns the duel opponents in content-definition order.
func (e *Engine) Opponents() []types.OpponentDef {
	out := make([]types.OpponentDef, len(e.Defs.Opponents))
	copy(out, e.Defs.Opponents)
	return out
}

// StartDuel builds both actors and returns a duel awaiting the player's
// first action. The player actor starts from the player's current pools,
// not full ones — walk in tired, fight tired.
func (e *Engine) StartDuel(opponentID string) (*duel.Duel, error) {
	if e.Player == nil {
		return nil, ErrNoPlayer
	}
	def, ok := e.Defs.Opponent(opponentID)
	if !ok {
		return nil, fmt.Errorf("unknown opponent %q", opponentID)
	}

	policy, err := duel.PolicyFor(def.Policy, e.Spells)
	if err != nil {
		return nil, fmt.Errorf("opponent %s: %w", def.ID, err)
	}

	p := e.Player
	player := actor.New(p.Name, p.MaxHealth, p.MaxEnergy, p.Spells)
	player.Health = p.Health
	player.Energy = p.Energy

	opponent := actor.New(def.Name, def.MaxHealth, def.MaxEnergy, def.Spells)

	return duel.New(player, opponent, policy, e.Spells, e.RNG, duelDefaultMaxTurn), nil
}

// DuelReport is the aftermath of a resolved duel.
type DuelReport struct {
	Outcome  duel.Outcome
	Points   int // house points awarded (may be negative)
	Healed   int // infirmary recovery applied afterwards
	Restored int
}

// ResolveDuel writes the duel's final resources back into the player's
// persistent state, awards house points by outcome, and applies the
// post-duel recovery.
func (e *Engine) ResolveDuel(d *duel.Duel) (DuelReport, error) {
	if e.Player == nil {
		return DuelReport{}, ErrNoPlayer
	}
	outcome, over := d.Outcome()
	if !over {
		return DuelReport{}, ErrDuelNotOver
	}

	state.WriteBack(e.Player, d.Player().Health, d.Player().Energy)

	var points int
	switch outcome.Result {
	case duel.Victory:
		points = duelVictoryPoints
	case duel.Defeat:
		points = duelDefeatPoints
	}
	state.AwardPoints(e.Player, points)

	beforeHealth, beforeEnergy := e.Player.Health, e.Player.Energy
	state.Heal(e.Player, duelRecoverHealth)
	state.RestoreEnergy(e.Player, duelRecoverEnergy)

	return DuelReport{
		Outcome:  outcome,
		Points:   points,
		Healed:   e.Player.Health - beforeHealth,
		Restored: e.Player.Energy - beforeEnergy,
	}, nil
}
