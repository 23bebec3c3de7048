package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirren/spellbound/engine"
	"github.com/mirren/spellbound/engine/duel"
	"github.com/mirren/spellbound/engine/quiz"
	"github.com/mirren/spellbound/types"
)

// screen is the input mode the model is in: what the next submitted line
// means depends on it.
type screen int

const (
	screenName screen = iota
	screenQuiz
	screenMenu
	screenPractice
	screenOpponent
	screenDuel
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Spellbound TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History
	hpBar    progress.Model
	enBar    progress.Model

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	quitting bool

	screen      screen
	pendingName string
	quiz        *quiz.Quiz
	duel        *duel.Duel
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for error/system output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	hpBar := progress.New(progress.WithSolidFill("203"), progress.WithoutPercentage())
	hpBar.Width = barWidth
	enBar := progress.New(progress.WithSolidFill("78"), progress.WithoutPercentage())
	enBar.Width = barWidth

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
		hpBar:   hpBar,
		enBar:   enBar,
		screen:  screenName,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	m := New(eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		game := m.engine.Defs.Game
		var lines []string

		lines = append(lines, game.Title+" v"+game.Version+" by "+game.Author)
		lines = append(lines, "")
		if game.Intro != "" {
			lines = append(lines, strings.TrimSpace(game.Intro))
			lines = append(lines, "")
		}
		lines = append(lines, "What is your name, student?")

		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line according to the screen.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	switch m.screen {
	case screenName:
		return m.handleName(input), nil
	case screenQuiz:
		return m.handleQuiz(input), nil
	case screenMenu:
		return m.handleMenu(input)
	case screenPractice:
		return m.handlePractice(input), nil
	case screenOpponent:
		return m.handleOpponent(input), nil
	case screenDuel:
		return m.handleDuel(input), nil
	}
	return m, nil
}

func (m Model) handleName(input string) Model {
	m.pendingName = input
	m.quiz = m.engine.NewQuiz()
	m.screen = screenQuiz

	lines := []string{"A battered hat is lowered onto your head. It asks:", ""}
	lines = append(lines, m.questionLines()...)
	return m.appendOutput(gameOutputMsg{input: input, lines: lines})
}

func (m Model) handleQuiz(input string) Model {
	question, more := m.quiz.Current()
	if !more {
		return m
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(question.Answers) {
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true,
			lines: []string{fmt.Sprintf("Pick a number between 1 and %d.", len(question.Answers))},
		})
	}
	if err := m.quiz.Answer(n - 1); err != nil {
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true, lines: []string{err.Error()},
		})
	}

	if !m.quiz.Done() {
		return m.appendOutput(gameOutputMsg{input: input, lines: m.questionLines()})
	}

	houseID := m.quiz.Sorted(m.engine.RNG)
	if err := m.engine.StartGame(m.pendingName, houseID); err != nil {
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true, lines: []string{err.Error()},
		})
	}
	m.screen = screenMenu

	house, _ := m.engine.Defs.House(houseID)
	lines := []string{
		fmt.Sprintf("The hat barely touches your head before it bellows: %s!",
			strings.ToUpper(house.Name)),
		fmt.Sprintf("Welcome to house %s, %s. Your training begins now.",
			house.Name, m.engine.Player.Name),
		"",
	}
	lines = append(lines, menuLines()...)
	return m.appendOutput(gameOutputMsg{input: input, lines: lines})
}

func (m Model) handleMenu(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "1", "stats":
		return m.appendOutput(gameOutputMsg{input: input, lines: m.statLines()}), nil

	case "2", "class":
		return m.appendOutput(gameOutputMsg{input: input, lines: m.classLines()}), nil

	case "3", "practice", "cast":
		spells := m.knownSpells()
		if len(spells) == 0 {
			return m.appendOutput(gameOutputMsg{
				input: input, isSystem: true,
				lines: []string{"You don't know any spells yet."},
			}), nil
		}
		m.screen = screenPractice
		lines := []string{"Which spell will you practice?"}
		for i, s := range spells {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, spellLabel(s)))
		}
		return m.appendOutput(gameOutputMsg{input: input, lines: lines}), nil

	case "4", "explore":
		return m.appendOutput(gameOutputMsg{input: input, lines: m.exploreLines()}), nil

	case "5", "duel":
		opponents := m.engine.Opponents()
		m.screen = screenOpponent
		lines := []string{"Who do you challenge?"}
		for i, o := range opponents {
			lines = append(lines, fmt.Sprintf("  %d. %s (%d health)", i+1, o.Name, o.MaxHealth))
		}
		return m.appendOutput(gameOutputMsg{input: input, lines: lines}), nil

	case "6", "quit", "exit", "leave":
		m = m.appendOutput(gameOutputMsg{
			input: input,
			lines: []string{fmt.Sprintf(
				"You leave the academy with %d house points. The gates close behind you.",
				m.engine.Player.HousePoints)},
		})
		m.quitting = true
		return m, tea.Quit

	default:
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true,
			lines: []string{fmt.Sprintf("Unknown choice: %s", input)},
		}), nil
	}
}

func (m Model) handlePractice(input string) Model {
	spells := m.knownSpells()
	spell, ok := pickSpell(input, spells)
	if !ok {
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true,
			lines: []string{fmt.Sprintf("Unknown choice: %s", input)},
		})
	}

	m.screen = screenMenu
	rep, err := m.engine.Practice(spell.Name)
	if err != nil {
		lines := []string{err.Error(), ""}
		lines = append(lines, menuLines()...)
		return m.appendOutput(gameOutputMsg{input: input, isSystem: true, lines: lines})
	}

	var line string
	switch {
	case !rep.Hit:
		line = fmt.Sprintf("Your %s sputters and dies. Practice makes perfect.", rep.Spell.Name)
	case rep.Restored > 0:
		line = fmt.Sprintf("Your %s takes hold. You recover %d energy.", rep.Spell.Name, rep.Restored)
	default:
		line = fmt.Sprintf("Your %s flares cleanly and fades. The form is good.", rep.Spell.Name)
	}
	lines := []string{line, ""}
	lines = append(lines, menuLines()...)
	return m.appendOutput(gameOutputMsg{input: input, lines: lines})
}

func (m Model) handleOpponent(input string) Model {
	opponents := m.engine.Opponents()
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(opponents) {
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true,
			lines: []string{fmt.Sprintf("Pick a number between 1 and %d.", len(opponents))},
		})
	}

	d, err := m.engine.StartDuel(opponents[n-1].ID)
	if err != nil {
		m.screen = screenMenu
		lines := []string{err.Error(), ""}
		lines = append(lines, menuLines()...)
		return m.appendOutput(gameOutputMsg{input: input, isSystem: true, lines: lines})
	}

	m.duel = d
	m.screen = screenDuel
	lines := []string{fmt.Sprintf("%s steps into the circle. Wands out.", d.Opponent().Name), ""}
	lines = append(lines, m.duelPromptLines()...)
	return m.appendOutput(gameOutputMsg{input: input, lines: lines})
}

func (m Model) handleDuel(input string) Model {
	action, ok := parseDuelAction(input, m.knownSpells())
	if !ok {
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true,
			lines: []string{fmt.Sprintf("Unknown choice: %s", input)},
		})
	}

	rep, err := m.duel.PlayerAction(action)
	switch {
	case errors.Is(err, duel.ErrNotEnoughEnergy):
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true,
			lines: []string{"You don't have the energy for that."},
		})
	case err != nil:
		return m.appendOutput(gameOutputMsg{
			input: input, isSystem: true, lines: []string{err.Error()},
		})
	}

	var lines []string
	for _, step := range rep.Steps {
		lines = append(lines, narrateStep(step))
	}

	if !rep.Over {
		lines = append(lines, "")
		lines = append(lines, m.duelPromptLines()...)
		return m.appendOutput(gameOutputMsg{input: input, lines: lines})
	}

	lines = append(lines, "")
	lines = append(lines, m.outcomeLines(rep.Outcome)...)
	m.duel = nil
	m.screen = screenMenu
	lines = append(lines, "")
	lines = append(lines, menuLines()...)
	return m.appendOutput(gameOutputMsg{input: input, lines: lines})
}

// outcomeLines narrates the duel's end and applies the aftermath.
func (m Model) outcomeLines(outcome duel.Outcome) []string {
	var lines []string
	switch outcome.Result {
	case duel.Victory:
		lines = append(lines, "Your opponent drops their wand. The duel is yours.")
	case duel.Defeat:
		lines = append(lines, "The floor comes up to meet you. The duel is lost.")
	case duel.Fled:
		lines = append(lines, "You bow out of the circle. No shame in living.")
	}

	rep, err := m.engine.ResolveDuel(m.duel)
	if err != nil {
		return append(lines, err.Error())
	}
	if rep.Points > 0 {
		lines = append(lines, fmt.Sprintf("House points +%d.", rep.Points))
	} else if rep.Points < 0 {
		lines = append(lines, fmt.Sprintf("House points %d.", rep.Points))
	}
	if rep.Healed > 0 || rep.Restored > 0 {
		lines = append(lines, fmt.Sprintf("The infirmary patches you up: health +%d, energy +%d.",
			rep.Healed, rep.Restored))
	}
	return lines
}

// menuLines is the academy hub menu.
func menuLines() []string {
	return []string{
		"What will you do?",
		"  1. Check your stats",
		"  2. Attend class",
		"  3. Practice a spell",
		"  4. Explore the grounds",
		"  5. Duel",
		"  6. Leave the academy",
	}
}

// questionLines renders the current quiz question with numbered answers.
func (m Model) questionLines() []string {
	question, ok := m.quiz.Current()
	if !ok {
		return nil
	}
	lines := []string{question.Prompt}
	for i, a := range question.Answers {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, a.Text))
	}
	return lines
}

func (m Model) statLines() []string {
	rows, err := m.engine.Stats()
	if err != nil {
		return []string{err.Error()}
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-12s %s", r.Label+":", r.Value))
	}
	return lines
}

func (m Model) classLines() []string {
	rep, err := m.engine.AttendClass()
	if err != nil {
		return []string{err.Error()}
	}
	if rep.AllKnown {
		return []string{"The professor has nothing left to teach you. You spend the hour correcting the textbook."}
	}
	return []string{
		fmt.Sprintf("You learn %s — %s", rep.Spell.Name, rep.Spell.Description),
		fmt.Sprintf("Knowledge +%d. House points +%d.", rep.Knowledge, rep.Points),
	}
}

func (m Model) exploreLines() []string {
	rep, err := m.engine.Explore()
	if err != nil {
		return []string{err.Error()}
	}
	lines := []string{rep.Text}
	if rep.Points > 0 {
		lines = append(lines, fmt.Sprintf("House points +%d.", rep.Points))
	} else if rep.Points < 0 {
		lines = append(lines, fmt.Sprintf("House points %d.", rep.Points))
	}
	if rep.Restored > 0 {
		lines = append(lines, fmt.Sprintf("The walk does you good: energy +%d.", rep.Restored))
	}
	return lines
}

// duelPromptLines shows the duel status and the spell menu.
func (m Model) duelPromptLines() []string {
	d := m.duel
	lines := []string{fmt.Sprintf("You: %d/%d health, %d/%d energy. %s: %d health.",
		d.Player().Health, d.Player().MaxHealth,
		d.Player().Energy, d.Player().MaxEnergy,
		d.Opponent().Name, d.Opponent().Health)}
	for i, s := range m.knownSpells() {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, spellLabel(s)))
	}
	lines = append(lines, "  0. Flee")
	return lines
}

// narrateStep renders one resolved duel action as a narrative line.
func narrateStep(s duel.Step) string {
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

// parseDuelAction maps an input line to a duel action: 0/flee, a spell
// number, or a spell name.
func parseDuelAction(line string, spells []types.SpellDef) (duel.Action, bool) {
	lower := strings.ToLower(line)
	if lower == "0" || lower == "flee" || lower == "run" {
		return duel.Flee(), true
	}
	if spell, ok := pickSpell(line, spells); ok {
		return duel.Cast(spell.Name), true
	}
	return duel.Action{}, false
}

// pickSpell resolves a menu number or a spell name against the list.
func pickSpell(line string, spells []types.SpellDef) (types.SpellDef, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(spells) {
			return types.SpellDef{}, false
		}
		return spells[n-1], true
	}
	for _, s := range spells {
		if strings.EqualFold(s.Name, line) {
			return s, true
		}
	}
	return types.SpellDef{}, false
}

// knownSpells returns the player's spells as full defs, spellbook order.
func (m Model) knownSpells() []types.SpellDef {
	var out []types.SpellDef
	for _, name := range m.engine.Player.Spells {
		if s, err := m.engine.Spells.Lookup(name); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// spellLabel is the menu line for a spell: name, category, cost.
func spellLabel(s types.SpellDef) string {
	return fmt.Sprintf("%s (%s, %d energy)", s.Name, s.Category, s.Cost)
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
