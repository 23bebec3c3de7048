// Package types defines the shared data structures for the Spellbound engine.
// This package contains only type definitions — no logic, no methods.
package types

// SpellCategory classifies what a spell does when it lands.
type SpellCategory string

const (
	// Offensive spells damage the target.
	Offensive SpellCategory = "offensive"
	// Defensive spells raise a one-shot ward on the caster.
	Defensive SpellCategory = "defensive"
	// Utility spells restore the caster's energy.
	Utility SpellCategory = "utility"
)

// SpellDef is the catalog definition of a single spell.
// All fields are fixed at content-definition time.
type SpellDef struct {
	Name        string
	Category    SpellCategory
	Cost        int     // energy required to cast
	Power       int     // effect magnitude (damage, ward strength, or energy restored)
	Chance      float64 // success probability in [0, 1]
	Description string
}

// HouseDef defines one of the academy's orders and its starting stats.
type HouseDef struct {
	ID        string
	Name      string
	Trait     string // short flavor ("bold", "cunning", ...)
	MaxHealth int
	MaxEnergy int
}

// OpponentDef is the catalog template for a duel opponent.
type OpponentDef struct {
	ID        string
	Name      string
	MaxHealth int
	MaxEnergy int
	Spells    []string // loadout, references SpellDef names
	Policy    string   // "random", "aggressive", or "cunning"
}

// QuestionDef is a single sorting-quiz question. Each answer scores one
// point for its house.
type QuestionDef struct {
	Prompt  string
	Answers []AnswerDef
}

// AnswerDef pairs an answer's display text with the house it favors.
type AnswerDef struct {
	Text  string
	House string // HouseDef ID
}

// EventDef is one exploration event: narrative text plus a point delta.
type EventDef struct {
	Text   string
	Points int
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title      string
	Author     string
	Version    string
	Intro      string
	StartSpell string // spell every new student begins with
}

// Player holds the player's persistent state between duels.
type Player struct {
	Name        string
	House       string // HouseDef ID
	Health      int
	MaxHealth   int
	Energy      int
	MaxEnergy   int
	Knowledge   int
	HousePoints int
	Spells      []string // known spell names, in learn order
	Inventory   []string
}
