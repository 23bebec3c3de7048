package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barWidth is the rendered width of the health and energy gauges.
const barWidth = 10

// renderStatusBar produces a full-width inverted status line. Before the
// sorting it shows the game title; afterwards the student's vitals.
func (m Model) renderStatusBar() string {
	p := m.engine.Player
	if p == nil {
		left := " " + m.engine.Defs.Game.Title
		right := "the sorting awaits "
		return barLine(left, right, m.width)
	}

	houseName := p.House
	if h, ok := m.engine.Defs.House(p.House); ok {
		houseName = h.Name
	}

	left := fmt.Sprintf(" %s of %s", p.Name, houseName)

	// Gauges if they fit, bare numbers on narrow terminals.
	right := fmt.Sprintf("HP %s %d/%d  EN %s %d/%d  Pts:%d ",
		m.hpBar.ViewAs(ratio(p.Health, p.MaxHealth)), p.Health, p.MaxHealth,
		m.enBar.ViewAs(ratio(p.Energy, p.MaxEnergy)), p.Energy, p.MaxEnergy,
		p.HousePoints)
	if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
		right = fmt.Sprintf("HP:%d/%d  EN:%d/%d  Pts:%d ",
			p.Health, p.MaxHealth, p.Energy, p.MaxEnergy, p.HousePoints)
	}

	// In a duel, show the opponent's remaining health too.
	if m.duel != nil {
		foe := m.duel.Opponent()
		candidate := fmt.Sprintf("%s:%d/%d  %s", foe.Name, foe.Health, foe.MaxHealth, right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	return barLine(left, right, m.width)
}

// ratio converts a current/max pair into a fill fraction in [0, 1].
func ratio(cur, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(cur) / float64(max)
}

// barLine lays out left- and right-aligned text on one styled bar.
func barLine(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return styleStatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
