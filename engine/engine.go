// Package engine ties the game together: character creation, classes,
// practice, exploration, and duels, all over the compiled content defs.
// It owns no I/O — the TUI and CLI drive it and render what it returns.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mirren/spellbound/engine/quiz"
	"github.com/mirren/spellbound/engine/rng"
	"github.com/mirren/spellbound/engine/spellbook"
	"github.com/mirren/spellbound/engine/state"
	"github.com/mirren/spellbound/types"
)

// Errors shared by engine operations.
var (
	ErrNoPlayer        = errors.New("no character created yet")
	ErrSpellNotKnown   = errors.New("spell not in your spellbook")
	ErrNotEnoughEnergy = errors.New("not enough energy")
)

// Engine holds the game definitions, the spell registry, the player, and
// the seeded RNG every subsystem draws from.
type Engine struct {
	Defs   *state.Defs
	Spells *spellbook.Registry
	Player *types.Player
	RNG    *rng.RNG
}

// New creates an engine from compiled definitions.
func New(defs *state.Defs, seed int64) (*Engine, error) {
	reg, err := spellbook.NewRegistry(defs.Spells)
	if err != nil {
		return nil, fmt.Errorf("building spell registry: %w", err)
	}
	return &Engine{
		Defs:   defs,
		Spells: reg,
		RNG:    rng.New(seed),
	}, nil
}

// NewQuiz returns a fresh sorting quiz over the content's questions.
func (e *Engine) NewQuiz() *quiz.Quiz {
	return quiz.New(e.Defs.Questions)
}

// StartGame creates the player character: sorted into the given house, at
// that house's stats, knowing the starting spell.
func (e *Engine) StartGame(name, houseID string) error {
	house, ok := e.Defs.House(houseID)
	if !ok {
		return fmt.Errorf("unknown house %q", houseID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Student"
	}
	e.Player = state.NewPlayer(name, house, e.Defs.Game.StartSpell)
	return nil
}

// StatLine is one row of the character sheet.
type StatLine struct {
	Label string
	Value string
}

// Stats returns the character sheet in display order.
func (e *Engine) Stats() ([]StatLine, error) {
	if e.Player == nil {
		return nil, ErrNoPlayer
	}
	p := e.Player

	houseName := p.House
	if h, ok := e.Defs.House(p.House); ok {
		houseName = h.Name
	}

	return []StatLine{
		{"Name", p.Name},
		{"House", houseName},
		{"Health", fmt.Sprintf("%d/%d", p.Health, p.MaxHealth)},
		{"Energy", fmt.Sprintf("%d/%d", p.Energy, p.MaxEnergy)},
		{"Knowledge", fmt.Sprintf("%d", p.Knowledge)},
		{"House Points", fmt.Sprintf("%d", p.HousePoints)},
		{"Spells", strings.Join(p.Spells, ", ")},
		{"Carrying", strings.Join(p.Inventory, ", ")},
	}, nil
}
