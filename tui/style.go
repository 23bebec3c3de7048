package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleRecover = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	styleWard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	styleHeading = lipgloss.NewStyle().
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindMenu
	kindDamage
	kindRecover
	kindWard
	kindHeading
	kindSystem
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(trimmed, "0.") || isMenuEntry(trimmed):
		return kindMenu
	case strings.Contains(line, "damage") || strings.Contains(line, "fizzles"):
		return kindDamage
	case strings.Contains(line, "restores") || strings.Contains(line, "recover") ||
		strings.Contains(line, "infirmary"):
		return kindRecover
	case strings.Contains(line, "ward"):
		return kindWard
	case strings.HasSuffix(trimmed, "?") || strings.HasSuffix(trimmed, "!"):
		return kindHeading
	default:
		return kindNarrative
	}
}

// isMenuEntry reports whether a line looks like a numbered menu entry.
func isMenuEntry(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	return trimmed[0] >= '1' && trimmed[0] <= '9' && trimmed[1] == '.'
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindMenu:
		return styleMenu.Render(line)
	case kindDamage:
		return styleDamage.Render(line)
	case kindRecover:
		return styleRecover.Render(line)
	case kindWard:
		return styleWard.Render(line)
	case kindHeading:
		return styleHeading.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
