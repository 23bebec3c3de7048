package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mirren/spellbound/engine/state"
	"github.com/mirren/spellbound/types"
)

// rawHouse holds a house table before compilation.
type rawHouse struct {
	id    string
	table *lua.LTable
}

// rawSpell holds a spell table before compilation.
type rawSpell struct {
	name  string
	table *lua.LTable
}

// rawOpponent holds an opponent table before compilation.
type rawOpponent struct {
	id    string
	table *lua.LTable
}

// rawQuestion holds a quiz question before compilation.
type rawQuestion struct {
	prompt string
	table  *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList converts an array-style Lua table into a []string.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct,
// preserving definition order.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = types.GameDef{
		Title:      getString(coll.game, "title"),
		Author:     getString(coll.game, "author"),
		Version:    getString(coll.game, "version"),
		Intro:      getString(coll.game, "intro"),
		StartSpell: getString(coll.game, "start_spell"),
	}

	for _, raw := range coll.houses {
		defs.Houses = append(defs.Houses, types.HouseDef{
			ID:        raw.id,
			Name:      getString(raw.table, "name"),
			Trait:     getString(raw.table, "trait"),
			MaxHealth: getInt(raw.table, "health"),
			MaxEnergy: getInt(raw.table, "energy"),
		})
	}

	for _, raw := range coll.spells {
		defs.Spells = append(defs.Spells, types.SpellDef{
			Name:        raw.name,
			Category:    types.SpellCategory(getString(raw.table, "category")),
			Cost:        getInt(raw.table, "cost"),
			Power:       getInt(raw.table, "power"),
			Chance:      getNumber(raw.table, "chance"),
			Description: getString(raw.table, "description"),
		})
	}

	for _, raw := range coll.opponents {
		defs.Opponents = append(defs.Opponents, types.OpponentDef{
			ID:        raw.id,
			Name:      getString(raw.table, "name"),
			MaxHealth: getInt(raw.table, "health"),
			MaxEnergy: getInt(raw.table, "energy"),
			Spells:    stringList(getTable(raw.table, "spells")),
			Policy:    getString(raw.table, "policy"),
		})
	}

	for _, raw := range coll.questions {
		q, err := compileQuestion(raw)
		if err != nil {
			return nil, err
		}
		defs.Questions = append(defs.Questions, q)
	}

	for _, tbl := range coll.events {
		defs.Events = append(defs.Events, types.EventDef{
			Text:   getString(tbl, "text"),
			Points: getInt(tbl, "points"),
		})
	}

	return defs, nil
}

// compileQuestion reads a question's answers: each entry is a
// { "display text", "house_id" } pair.
func compileQuestion(raw rawQuestion) (types.QuestionDef, error) {
	q := types.QuestionDef{Prompt: raw.prompt}

	for i := 1; i <= raw.table.MaxN(); i++ {
		pair, ok := raw.table.RawGetInt(i).(*lua.LTable)
		if !ok {
			return q, fmt.Errorf("question %q: answer %d is not a table", raw.prompt, i)
		}
		text, ok1 := pair.RawGetInt(1).(lua.LString)
		house, ok2 := pair.RawGetInt(2).(lua.LString)
		if !ok1 || !ok2 {
			return q, fmt.Errorf("question %q: answer %d needs {text, house}", raw.prompt, i)
		}
		q.Answers = append(q.Answers, types.AnswerDef{
			Text:  string(text),
			House: string(house),
		})
	}

	return q, nil
}
