package loader

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/mirren/spellbound/types"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func TestCompile_Game(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game {
			title = "Test Academy",
			author = "Tester",
			version = "1.0",
			intro = "Welcome.",
			start_spell = "Spark",
		}
		Spell "Spark" { category = "offensive", cost = 2, power = 4, chance = 0.9 }
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if defs.Game.Title != "Test Academy" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
	if defs.Game.StartSpell != "Spark" {
		t.Errorf("StartSpell = %q", defs.Game.StartSpell)
	}
}

func TestCompile_NoGame_Fails(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`Spell "Spark" { category = "offensive" }`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if _, err := compile(coll); err == nil {
		t.Fatal("expected error without a Game{} definition")
	}
}

func TestCompile_Spell(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "Spark" }
		Spell "Spark" {
			category = "offensive",
			cost = 3,
			power = 7,
			chance = 0.85,
			description = "A stinging dart of light.",
		}
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(defs.Spells) != 1 {
		t.Fatalf("spells = %d, want 1", len(defs.Spells))
	}
	s := defs.Spells[0]
	if s.Name != "Spark" || s.Category != types.Offensive {
		t.Errorf("spell = %+v", s)
	}
	if s.Cost != 3 || s.Power != 7 || s.Chance != 0.85 {
		t.Errorf("numbers = %d/%d/%v", s.Cost, s.Power, s.Chance)
	}
	if s.Description != "A stinging dart of light." {
		t.Errorf("description = %q", s.Description)
	}
}

func TestCompile_SpellsKeepDefinitionOrder(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "A" }
		Spell "C" { category = "utility" }
		Spell "A" { category = "offensive" }
		Spell "B" { category = "defensive" }
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var names []string
	for _, s := range defs.Spells {
		names = append(names, s.Name)
	}
	if got := strings.Join(names, ","); got != "C,A,B" {
		t.Errorf("order = %s, want C,A,B", got)
	}
}

func TestCompile_Opponent(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "Spark" }
		Spell "Spark" { category = "offensive", cost = 2, power = 4, chance = 0.9 }
		Opponent "golem" {
			name = "Clay Golem",
			health = 60,
			energy = 40,
			spells = { "Spark" },
			policy = "random",
		}
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(defs.Opponents) != 1 {
		t.Fatalf("opponents = %d, want 1", len(defs.Opponents))
	}
	o := defs.Opponents[0]
	if o.ID != "golem" || o.Name != "Clay Golem" {
		t.Errorf("opponent = %+v", o)
	}
	if o.MaxHealth != 60 || o.MaxEnergy != 40 {
		t.Errorf("pools = %d/%d", o.MaxHealth, o.MaxEnergy)
	}
	if len(o.Spells) != 1 || o.Spells[0] != "Spark" {
		t.Errorf("loadout = %v", o.Spells)
	}
	if o.Policy != "random" {
		t.Errorf("policy = %q", o.Policy)
	}
}

func TestCompile_Question(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "Spark" }
		Question "What matters most?" {
			{ "Courage", "emberhall" },
			{ "Wisdom", "mistvale" },
		}
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(defs.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(defs.Questions))
	}
	q := defs.Questions[0]
	if q.Prompt != "What matters most?" {
		t.Errorf("prompt = %q", q.Prompt)
	}
	if len(q.Answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(q.Answers))
	}
	if q.Answers[0].Text != "Courage" || q.Answers[0].House != "emberhall" {
		t.Errorf("answer[0] = %+v", q.Answers[0])
	}
}

func TestCompile_Question_BadAnswer_Fails(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "Spark" }
		Question "Broken?" {
			"not a table",
		}
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if _, err := compile(coll); err == nil {
		t.Fatal("expected error for malformed answer")
	}
}

func TestCompile_Event(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "Spark" }
		Event { text = "A peacock blocks the path.", points = -5 }
		Event { text = "You shortcut through the greenhouse.", points = 5 }
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(defs.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(defs.Events))
	}
	if defs.Events[0].Points != -5 || defs.Events[1].Points != 5 {
		t.Errorf("points = %d, %d", defs.Events[0].Points, defs.Events[1].Points)
	}
}

func TestCompile_House(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	err := L.DoString(`
		Game { title = "T", start_spell = "Spark" }
		House "emberhall" {
			name = "Emberhall",
			trait = "bold",
			health = 120,
			energy = 100,
		}
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	defs, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(defs.Houses) != 1 {
		t.Fatalf("houses = %d, want 1", len(defs.Houses))
	}
	h := defs.Houses[0]
	if h.ID != "emberhall" || h.Name != "Emberhall" || h.Trait != "bold" {
		t.Errorf("house = %+v", h)
	}
	if h.MaxHealth != 120 || h.MaxEnergy != 100 {
		t.Errorf("pools = %d/%d", h.MaxHealth, h.MaxEnergy)
	}
}
