// Package cli provides the plain-terminal front end: menu rendering, input
// reading, and output formatting over the Spellbound engine.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mirren/spellbound/engine"
	"github.com/mirren/spellbound/engine/duel"
	"github.com/mirren/spellbound/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)

	scanner *bufio.Scanner
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game: intro, name, sorting, then the academy menu loop.
// It returns when the player quits or the input runs dry.
func (c *CLI) Run() {
	c.scanner = bufio.NewScanner(c.In)

	if intro := c.Engine.Defs.Game.Intro; intro != "" {
		c.printLine(strings.TrimSpace(intro))
		c.printLine("")
	}

	name, ok := c.prompt("What is your name, student? ")
	if !ok {
		return
	}

	houseID, ok := c.runQuiz()
	if !ok {
		return
	}
	if err := c.Engine.StartGame(name, houseID); err != nil {
		c.printSystem(fmt.Sprintf("Could not start: %v", err))
		return
	}

	house, _ := c.Engine.Defs.House(houseID)
	c.printLine("")
	c.printLine(fmt.Sprintf("The hat barely touches your head before it bellows: %s!",
		strings.ToUpper(house.Name)))
	c.printLine(fmt.Sprintf("Welcome to house %s, %s. Your training begins now.",
		house.Name, c.Engine.Player.Name))

	c.menuLoop()
}

// menuLoop shows the academy menu until the player quits.
func (c *CLI) menuLoop() {
	for {
		c.printLine("")
		c.printLine("What will you do?")
		c.printLine("  1. Check your stats")
		c.printLine("  2. Attend class")
		c.printLine("  3. Practice a spell")
		c.printLine("  4. Explore the grounds")
		c.printLine("  5. Duel")
		c.printLine("  6. Leave the academy")

		choice, ok := c.prompt("> ")
		if !ok {
			return
		}
		switch strings.ToLower(choice) {
		case "1", "stats":
			c.showStats()
		case "2", "class":
			c.attendClass()
		case "3", "practice", "cast":
			c.practice()
		case "4", "explore":
			c.explore()
		case "5", "duel":
			c.duel()
		case "6", "quit", "exit", "leave":
			c.printLine("")
			c.printLine(fmt.Sprintf("You leave the academy with %d house points. The gates close behind you.",
				c.Engine.Player.HousePoints))
			return
		default:
			c.printSystem(fmt.Sprintf("Unknown choice: %s", choice))
		}
	}
}

// runQuiz walks the sorting questions and returns the winning house ID.
func (c *CLI) runQuiz() (string, bool) {
	q := c.Engine.NewQuiz()
	c.printLine("")
	c.printLine("A battered hat is lowered onto your head. It asks:")

	for {
		question, more := q.Current()
		if !more {
			break
		}
		c.printLine("")
		c.printLine(question.Prompt)
		for i, a := range question.Answers {
			c.printLine(fmt.Sprintf("  %d. %s", i+1, a.Text))
		}

		n, ok := c.promptIndex("> ", len(question.Answers))
		if !ok {
			return "", false
		}
		if err := q.Answer(n); err != nil {
			c.printSystem(err.Error())
		}
	}

	return q.Sorted(c.Engine.RNG), true
}

func (c *CLI) showStats() {
	lines, err := c.Engine.Stats()
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine("")
	for _, l := range lines {
		c.printLine(fmt.Sprintf("%-12s %s", l.Label+":", l.Value))
	}
}

func (c *CLI) attendClass() {
	rep, err := c.Engine.AttendClass()
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine("")
	if rep.AllKnown {
		c.printLine("The professor has nothing left to teach you. You spend the hour correcting the textbook.")
		return
	}
	c.printLine(fmt.Sprintf("You learn %s — %s", rep.Spell.Name, rep.Spell.Description))
	c.printLine(fmt.Sprintf("Knowledge +%d. House points +%d.", rep.Knowledge, rep.Points))
}

func (c *CLI) practice() {
	spells := c.knownSpells()
	if len(spells) == 0 {
		c.printSystem("You don't know any spells yet.")
		return
	}

	c.printLine("")
	c.printLine("Which spell will you practice?")
	for i, s := range spells {
		c.printLine(fmt.Sprintf("  %d. %s", i+1, spellLabel(s)))
	}

	n, ok := c.promptIndex("> ", len(spells))
	if !ok {
		return
	}

	rep, err := c.Engine.Practice(spells[n].Name)
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	switch {
	case !rep.Hit:
		c.printLine(fmt.Sprintf("Your %s sputters and dies. Practice makes perfect.", rep.Spell.Name))
	case rep.Restored > 0:
		c.printLine(fmt.Sprintf("Your %s takes hold. You recover %d energy.", rep.Spell.Name, rep.Restored))
	default:
		c.printLine(fmt.Sprintf("Your %s flares cleanly and fades. The form is good.", rep.Spell.Name))
	}
}

func (c *CLI) explore() {
	rep, err := c.Engine.Explore()
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine("")
	c.printLine(rep.Text)
	if rep.Points > 0 {
		c.printLine(fmt.Sprintf("House points +%d.", rep.Points))
	} else if rep.Points < 0 {
		c.printLine(fmt.Sprintf("House points %d.", rep.Points))
	}
	if rep.Restored > 0 {
		c.printLine(fmt.Sprintf("The walk does you good: energy +%d.", rep.Restored))
	}
}

// duel runs opponent selection and the turn loop for one duel.
func (c *CLI) duel() {
	opponents := c.Engine.Opponents()
	c.printLine("")
	c.printLine("Who do you challenge?")
	for i, o := range opponents {
		c.printLine(fmt.Sprintf("  %d. %s (%d health)", i+1, o.Name, o.MaxHealth))
	}

	n, ok := c.promptIndex("> ", len(opponents))
	if !ok {
		return
	}

	d, err := c.Engine.StartDuel(opponents[n].ID)
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine("")
	c.printLine(fmt.Sprintf("%s steps into the circle. Wands out.", d.Opponent().Name))

	for {
		c.printLine("")
		c.printLine(fmt.Sprintf("You: %d/%d health, %d/%d energy. %s: %d health.",
			d.Player().Health, d.Player().MaxHealth,
			d.Player().Energy, d.Player().MaxEnergy,
			d.Opponent().Name, d.Opponent().Health))

		spells := c.knownSpells()
		for i, s := range spells {
			c.printLine(fmt.Sprintf("  %d. %s", i+1, spellLabel(s)))
		}
		c.printLine("  0. Flee")

		line, ok := c.prompt("> ")
		if !ok {
			return
		}

		action, valid := parseDuelAction(line, spells)
		if !valid {
			c.printSystem(fmt.Sprintf("Unknown choice: %s", line))
			continue
		}

		rep, err := d.PlayerAction(action)
		switch {
		case errors.Is(err, duel.ErrNotEnoughEnergy):
			c.printSystem("You don't have the energy for that.")
			continue
		case err != nil:
			c.printSystem(err.Error())
			continue
		}

		for _, step := range rep.Steps {
			c.printLine(formatStep(step))
		}
		if rep.Over {
			c.finishDuel(d, rep.Outcome)
			return
		}
	}
}

// finishDuel prints the outcome and applies the aftermath.
func (c *CLI) finishDuel(d *duel.Duel, outcome duel.Outcome) {
	c.printLine("")
	switch outcome.Result {
	case duel.Victory:
		c.printLine(fmt.Sprintf("%s drops their wand. The duel is yours.", d.Opponent().Name))
	case duel.Defeat:
		c.printLine("The floor comes up to meet you. The duel is lost.")
	case duel.Fled:
		c.printLine("You bow out of the circle. No shame in living.")
	}

	rep, err := c.Engine.ResolveDuel(d)
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	if rep.Points > 0 {
		c.printLine(fmt.Sprintf("House points +%d.", rep.Points))
	} else if rep.Points < 0 {
		c.printLine(fmt.Sprintf("House points %d.", rep.Points))
	}
	if rep.Healed > 0 || rep.Restored > 0 {
		c.printLine(fmt.Sprintf("The infirmary patches you up: health +%d, energy +%d.",
			rep.Healed, rep.Restored))
	}
}

// parseDuelAction maps a menu line to a duel action: 0/flee, a spell number,
// or a spell name.
func parseDuelAction(line string, spells []types.SpellDef) (duel.Action, bool) {
	lower := strings.ToLower(line)
	if lower == "0" || lower == "flee" || lower == "run" {
		return duel.Flee(), true
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(spells) {
			return duel.Action{}, false
		}
		return duel.Cast(spells[n-1].Name), true
	}
	for _, s := range spells {
		if strings.EqualFold(s.Name, line) {
			return duel.Cast(s.Name), true
		}
	}
	return duel.Action{}, false
}

// formatStep renders one resolved duel action as a narrative line.
func formatStep(s duel.Step) string {
	switch {
	case s.Forfeited:
		return fmt.Sprintf("%s falters, too drained to cast.", s.Caster)
	case !s.Hit:
		return fmt.Sprintf("%s's %s fizzles out.", s.Caster, s.Spell)
	case s.Category == types.Offensive && s.Damage == 0:
		return fmt.Sprintf("%s's %s is swallowed whole by the ward.", s.Caster, s.Spell)
	case s.Category == types.Offensive:
		return fmt.Sprintf("%s's %s strikes for %d damage.", s.Caster, s.Spell, s.Damage)
	case s.Category == types.Defensive:
		return fmt.Sprintf("%s raises a shimmering ward (%d).", s.Caster, s.Ward)
	default:
		return fmt.Sprintf("%s's %s restores %d energy.", s.Caster, s.Spell, s.Restored)
	}
}

// knownSpells returns the player's spells as full defs, spellbook order.
func (c *CLI) knownSpells() []types.SpellDef {
	var out []types.SpellDef
	for _, name := range c.Engine.Player.Spells {
		if s, err := c.Engine.Spells.Lookup(name); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// spellLabel is the menu line for a spell: name, category, cost.
func spellLabel(s types.SpellDef) string {
	return fmt.Sprintf("%s (%s, %d energy)", s.Name, s.Category, s.Cost)
}

// prompt prints the prompt and reads one input line, skipping blanks and
// comment lines. ok is false once the input is exhausted.
func (c *CLI) prompt(text string) (string, bool) {
	for {
		c.print(text)
		if !c.scanner.Scan() {
			return "", false
		}
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(line)
		}
		return line, true
	}
}

// promptIndex reads a 1-based menu choice and returns it 0-based,
// re-prompting until the input is valid or exhausted.
func (c *CLI) promptIndex(text string, max int) (int, bool) {
	for {
		line, ok := c.prompt(text)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > max {
			c.printSystem(fmt.Sprintf("Pick a number between 1 and %d.", max))
			continue
		}
		return n - 1, true
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
