// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/mirren/spellbound/engine/state"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	houses    []rawHouse
	spells    []rawSpell
	opponents []rawOpponent
	questions []rawQuestion
	events    []*lua.LTable
}

// Load reads all .lua files from a directory, compiles them into game
// definitions, validates references, and returns the immutable Defs.
func Load(dir string) (*state.Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, e.Name())
		}
	}

	return load(names, func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
}

// LoadFS loads content from a file system — typically the embedded
// content shipped with the binary.
func LoadFS(fsys fs.FS) (*state.Defs, error) {
	var names []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".lua") {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content: %w", err)
	}

	return load(names, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, name)
	})
}

// load runs the named files through a sandboxed VM, compiles, and validates.
func load(names []string, read func(string) ([]byte, error)) (*state.Defs, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no .lua content files found")
	}
	names = sortedLuaFiles(names)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, name := range names {
		src, err := read(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if err := doNamed(L, name, string(src)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", name, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	if err := validate(defs); err != nil {
		return nil, err
	}

	return defs, nil
}

// doNamed executes source under its file name so Lua errors point at the
// right content file.
func doNamed(L *lua.LState, name, src string) error {
	fn, err := L.LoadString(src)
	if err != nil {
		return err
	}
	if fn.Proto != nil {
		fn.Proto.SourceName = name
	}
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must not seed its own randomness; the engine owns the RNG.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}

// sortedLuaFiles orders content files: game.lua first, rest alphabetical.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if filepath.Base(f) == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
