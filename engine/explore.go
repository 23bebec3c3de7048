package engine

import "github.com/mirren/spellbound/engine/state"

// Energy regained from wandering the grounds, inclusive bounds.
const (
	exploreEnergyMin = 5
	exploreEnergyMax = 15
)

// ExploreReport describes one trip around the academy grounds.
type ExploreReport struct {
	Text     string
	Points   int // house points gained or lost
	Restored int // energy regained
}

// Explore picks a random event from the content table, applies its point
// delta, and restores a little energy.
func (e *Engine) Explore() (ExploreReport, error) {
	if e.Player == nil {
		return ExploreReport{}, ErrNoPlayer
	}

	event := e.Defs.Events[e.RNG.Intn(len(e.Defs.Events))]
	state.AwardPoints(e.Player, event.Points)

	restored := e.RNG.Between(exploreEnergyMin, exploreEnergyMax)
	before := e.Player.Energy
	state.RestoreEnergy(e.Player, restored)

	return ExploreReport{
		Text:     event.Text,
		Points:   event.Points,
		Restored: e.Player.Energy - before,
	}, nil
}
