package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/batflap/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorWhite:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorViolet:     lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	core.ColorDeepViolet: lipgloss.NewStyle().Foreground(lipgloss.Color("91")),
	core.ColorSlate:      lipgloss.NewStyle().Foreground(lipgloss.Color("67")),
	core.ColorDarkSlate:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorMoon:       lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
	core.ColorIndigo:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
