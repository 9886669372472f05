package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flood-escape/internal/core"
)

// colorStyles maps palette roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorWater:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Background(lipgloss.Color("17")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorDiver:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Background(lipgloss.Color("17")).Bold(true),
	core.ColorBubble:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorDrainOff: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorDrainOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorExit:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
