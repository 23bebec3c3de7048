package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content constructors as Lua globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start_spell = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// House "id" { ... } — curried: House("id") returns a function that
	// takes the definition table.
	L.SetGlobal("House", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.houses = append(coll.houses, rawHouse{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Spell "Name" { ... } — curried.
	L.SetGlobal("Spell", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.spells = append(coll.spells, rawSpell{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Opponent "id" { ... } — curried.
	L.SetGlobal("Opponent", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.opponents = append(coll.opponents, rawOpponent{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Question "prompt" { {"answer", "house_id"}, ... } — curried.
	L.SetGlobal("Question", L.NewFunction(func(L *lua.LState) int {
		prompt := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.questions = append(coll.questions, rawQuestion{prompt: prompt, table: tbl})
			return 0
		}))
		return 1
	}))

	// Event { text = "...", points = 10 }
	L.SetGlobal("Event", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.events = append(coll.events, tbl)
		return 0
	}))
}
