package loader

import (
	"strings"
	"testing"

	"github.com/mirren/spellbound/engine/state"
	"github.com/mirren/spellbound/types"
)

// validDefs returns a minimal valid Defs for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:      "Test",
			StartSpell: "Spark",
		},
		Houses: []types.HouseDef{
			{ID: "emberhall", Name: "Emberhall", MaxHealth: 100, MaxEnergy: 100},
		},
		Spells: []types.SpellDef{
			{Name: "Spark", Category: types.Offensive, Cost: 2, Power: 4, Chance: 0.9},
		},
		Opponents: []types.OpponentDef{
			{ID: "golem", Name: "Golem", MaxHealth: 50, MaxEnergy: 50,
				Spells: []string{"Spark"}, Policy: "random"},
		},
		Questions: []types.QuestionDef{
			{Prompt: "Pick.", Answers: []types.AnswerDef{
				{Text: "A", House: "emberhall"},
				{Text: "B", House: "emberhall"},
			}},
		},
		Events: []types.EventDef{
			{Text: "Something happens.", Points: 5},
		},
	}
}

func TestValidate_ValidDefs(t *testing.T) {
	if err := validate(validDefs()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_EmptyTitle(t *testing.T) {
	defs := validDefs()
	defs.Game.Title = ""

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "title")
}

func TestValidate_MissingStartSpell(t *testing.T) {
	defs := validDefs()
	defs.Game.StartSpell = "Nonexistent"

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for missing start spell")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "start spell")
}

func TestValidate_DuplicateSpell(t *testing.T) {
	defs := validDefs()
	defs.Spells = append(defs.Spells, types.SpellDef{
		Name: "spark", Category: types.Utility, Chance: 1,
	})

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for duplicate spell")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "duplicate spell")
}

func TestValidate_BadCategory(t *testing.T) {
	defs := validDefs()
	defs.Spells[0].Category = "forbidden"

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "unknown category")
}

func TestValidate_ChanceOutOfRange(t *testing.T) {
	defs := validDefs()
	defs.Spells[0].Chance = 1.5

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for chance > 1")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "chance")
}

func TestValidate_HouseNeedsPositivePools(t *testing.T) {
	defs := validDefs()
	defs.Houses[0].MaxEnergy = 0

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for zero energy house")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "positive health and energy")
}

func TestValidate_OpponentUndefinedSpell(t *testing.T) {
	defs := validDefs()
	defs.Opponents[0].Spells = []string{"Voidcall"}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for undefined spell in loadout")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "undefined spell")
}

func TestValidate_OpponentUnknownPolicy(t *testing.T) {
	defs := validDefs()
	defs.Opponents[0].Policy = "vindictive"

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for unknown policy")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "unknown policy")
}

func TestValidate_OpponentEmptyLoadout(t *testing.T) {
	defs := validDefs()
	defs.Opponents[0].Spells = nil

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for empty loadout")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "no spells")
}

func TestValidate_QuestionNeedsTwoAnswers(t *testing.T) {
	defs := validDefs()
	defs.Questions[0].Answers = defs.Questions[0].Answers[:1]

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for single-answer question")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "two answers")
}

func TestValidate_AnswerUndefinedHouse(t *testing.T) {
	defs := validDefs()
	defs.Questions[0].Answers[1].House = "nowhere"

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for undefined house in answer")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "undefined house")
}

func TestValidate_EmptyEventText(t *testing.T) {
	defs := validDefs()
	defs.Events[0].Text = ""

	err := validate(defs)
	if err == nil {
		t.Fatal("expected error for empty event text")
	}
	ve := err.(*ValidationError)
	assertContains(t, ve.Errors, "no text")
}

func TestValidate_MissingSections(t *testing.T) {
	defs := &state.Defs{Game: types.GameDef{Title: "T", StartSpell: "Spark"}}

	err := validate(defs)
	if err == nil {
		t.Fatal("expected errors for empty content")
	}
	ve := err.(*ValidationError)
	for _, want := range []string{"Spell", "House", "Opponent", "Question", "Event"} {
		assertContains(t, ve.Errors, want)
	}
}

// assertContains checks that at least one string in the slice contains substr.
func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}
