package loader

import (
	"fmt"
	"strings"

	"github.com/mirren/spellbound/engine/state"
	"github.com/mirren/spellbound/types"
)

// ValidationError collects all validation errors found in the content.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known opponent policies.
var validPolicies = map[string]bool{
	"random":     true,
	"aggressive": true,
	"cunning":    true,
}

// Known spell categories.
var validCategories = map[types.SpellCategory]bool{
	types.Offensive: true,
	types.Defensive: true,
	types.Utility:   true,
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	spells := map[string]bool{}
	for _, s := range defs.Spells {
		key := strings.ToLower(s.Name)
		if spells[key] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate spell %q", s.Name))
		}
		spells[key] = true

		if !validCategories[s.Category] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"spell %q has unknown category %q", s.Name, s.Category))
		}
		if s.Cost < 0 || s.Power < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"spell %q has negative cost or power", s.Name))
		}
		if s.Chance < 0 || s.Chance > 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"spell %q chance %v outside [0, 1]", s.Name, s.Chance))
		}
	}
	if len(defs.Spells) == 0 {
		ve.Errors = append(ve.Errors, "at least one Spell is required")
	}

	// Starting spell exists.
	if defs.Game.StartSpell == "" {
		ve.Errors = append(ve.Errors, "Game.start_spell is required")
	} else if !spells[strings.ToLower(defs.Game.StartSpell)] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start spell %q not found among defined spells", defs.Game.StartSpell))
	}

	houses := map[string]bool{}
	for _, h := range defs.Houses {
		if houses[h.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate house %q", h.ID))
		}
		houses[h.ID] = true

		if h.MaxHealth <= 0 || h.MaxEnergy <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"house %q needs positive health and energy", h.ID))
		}
	}
	if len(defs.Houses) == 0 {
		ve.Errors = append(ve.Errors, "at least one House is required")
	}

	opponents := map[string]bool{}
	for _, o := range defs.Opponents {
		if opponents[o.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate opponent %q", o.ID))
		}
		opponents[o.ID] = true

		if o.MaxHealth <= 0 || o.MaxEnergy <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"opponent %q needs positive health and energy", o.ID))
		}
		if len(o.Spells) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"opponent %q has no spells", o.ID))
		}
		for _, name := range o.Spells {
			if !spells[strings.ToLower(name)] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"opponent %q knows undefined spell %q", o.ID, name))
			}
		}
		if !validPolicies[o.Policy] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"opponent %q has unknown policy %q", o.ID, o.Policy))
		}
	}
	if len(defs.Opponents) == 0 {
		ve.Errors = append(ve.Errors, "at least one Opponent is required")
	}

	for _, q := range defs.Questions {
		if len(q.Answers) < 2 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"question %q needs at least two answers", q.Prompt))
		}
		for _, a := range q.Answers {
			if !houses[a.House] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"question %q answer %q names undefined house %q", q.Prompt, a.Text, a.House))
			}
		}
	}
	if len(defs.Questions) == 0 {
		ve.Errors = append(ve.Errors, "at least one Question is required")
	}

	for i, ev := range defs.Events {
		if ev.Text == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("event %d has no text", i+1))
		}
	}
	if len(defs.Events) == 0 {
		ve.Errors = append(ve.Errors, "at least one Event is required")
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
