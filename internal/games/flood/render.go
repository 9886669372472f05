package flood

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/flood-escape/internal/config"
	"github.com/vovakirdan/flood-escape/internal/core"
	"github.com/vovakirdan/flood-escape/internal/maze"
)

const (
	cellCols  = 3 // Screen columns per maze cell, shared wall included
	cellRows  = 2 // Screen rows per maze cell, shared wall included
	hudHeight = 2
	barWidth  = 20
	blinkTick = 20 // Ticks per half period of the low oxygen warning
)

const footerHint = "WASD/Arrows: Move | Collect AIR BUBBLES | Activate DRAINS | Reach EXIT"

// Render draws the current session state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if h, ok := handlers[g.session.State()]; ok {
		h.render(g, dst)
	}
}

func (g *Game) renderMenu(dst *core.Screen) {
	y := max(0, dst.Height()/2-6)

	dst.DrawTextCentered(y, "F L O O D   E S C A P E", core.ColorAccent)
	dst.DrawTextCentered(y+1, "SURVIVE THE RISING FLOOD!", core.ColorWater)

	for i, item := range menuItems {
		label := "  " + item.label + "  "
		c := core.ColorText
		if i == g.cursor {
			label = "> " + item.label + " <"
			c = core.ColorAccent
		}
		dst.DrawTextCentered(y+4+i*2, label, c)
	}

	hintY := y + 4 + len(menuItems)*2 + 1
	dst.DrawTextCentered(hintY, "Up/Down: Select | Enter: Confirm | A: About | Q: Quit", core.ColorDim)
	if g.loadErr != nil {
		dst.DrawTextCentered(hintY+2, truncate(g.loadErr.Error(), dst.Width()-2), core.ColorWarning)
		dst.DrawTextCentered(hintY+3, "(using built-in defaults)", core.ColorDim)
	}
}

var aboutSections = []struct {
	title string
	lines []string
}{
	{
		title: "HOW TO PLAY",
		lines: []string{
			"Use WASD or Arrow Keys to move",
			"Water constantly rises - don't drown!",
			"Collect AIR BUBBLES (o) to refill oxygen",
			"Activate DRAIN SWITCHES (D) to slow/reverse flooding",
			"Reach the GREEN EXIT (E) to win",
		},
	},
	{
		title: "STRATEGY TIPS",
		lines: []string{
			"Find drains quickly to control water level",
			"Save air bubbles for emergencies",
			"Learn the maze layout before water rises",
		},
	},
}

func (g *Game) renderAbout(dst *core.Screen) {
	y := 1
	dst.DrawTextCentered(y, "ABOUT FLOOD ESCAPE", core.ColorAccent)
	y += 2
	for _, sec := range aboutSections {
		dst.DrawTextCentered(y, sec.title, core.ColorWater)
		y++
		for _, line := range sec.lines {
			dst.DrawTextCentered(y, "* "+line, core.ColorText)
			y++
		}
		y++
	}
	dst.DrawTextCentered(y, "Press ENTER or ESC to return", core.ColorDim)
}

func (g *Game) renderExited(dst *core.Screen) {
	dst.DrawTextCentered(dst.Height()/2, "Thanks for playing!", core.ColorAccent)
}

// boardSize returns the screen footprint of the maze.
func boardSize(gw, gh int) (w, h int) {
	return gw*cellCols + 1, gh*cellRows + 1
}

func (g *Game) renderPlaying(dst *core.Screen) {
	snap := g.session.Snapshot()

	boardW, boardH := boardSize(snap.GridW, snap.GridH)
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		g.renderTooSmall(dst, boardW, boardH+hudHeight)
		return
	}

	ox := (dst.Width() - boardW) / 2
	oy := hudHeight

	g.renderHUD(dst, &snap, ox, boardW)
	renderWater(dst, &snap, ox, oy, boardW, boardH)
	renderWalls(dst, snap.Grid, ox, oy)
	renderEntities(dst, &snap, ox, oy)

	if footerY := oy + boardH; footerY < dst.Height() {
		dst.DrawTextCentered(footerY, truncate(footerHint, dst.Width()), core.ColorDim)
	}

	switch {
	case snap.Lost:
		renderOverlay(dst, core.ColorWarning,
			"GAME OVER",
			"You drowned!",
			"Press ENTER to retry or TAB for menu")
	case snap.Won:
		renderOverlay(dst, core.ColorSuccess,
			"YOU ESCAPED!",
			fmt.Sprintf("Time: %.1f seconds", snap.Elapsed.Seconds()),
			"Press ENTER for new maze or TAB for menu")
	}
}

// renderHUD draws the timer, oxygen bar and flood gauges above the maze.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot, ox, boardW int) {
	collected, active := 0, 0
	for _, b := range snap.Bubbles {
		if b.Collected {
			collected++
		}
	}
	for _, d := range snap.Drains {
		if d.Activated {
			active++
		}
	}
	oxygen := fmt.Sprintf("] %3.0f%%", snap.Oxygen)
	gauges := fmt.Sprintf("  Water %3.0f%%  Drains %d/%d  Air %d/%d",
		snap.WaterPercent, active, len(snap.Drains), collected, len(snap.Bubbles))

	// The gauge line is wider than the compact board, so center it on
	// the screen instead.
	lineW := len("O2 [") + barWidth + len(oxygen) + len(gauges)
	hudW := max(boardW, lineW)
	x := max(0, ox-(hudW-boardW)/2)

	if snap.LowOxygen && !snap.Lost && (g.tick/blinkTick)%2 == 0 {
		dst.DrawText(x, 0, "! LOW OXYGEN !", core.ColorWarning)
	} else {
		dst.DrawText(x, 0, "FLOOD ESCAPE", core.ColorAccent)
	}
	timer := fmt.Sprintf("Time: %.1fs", snap.Elapsed.Seconds())
	dst.DrawText(x+hudW-len(timer), 0, timer, core.ColorText)

	filled := core.Clamp(int(math.Round(snap.Oxygen/maxOxygen*barWidth)), 0, barWidth)
	barColor := core.ColorBubble
	if snap.LowOxygen {
		barColor = core.ColorWarning
	}
	dst.DrawText(x, 1, "O2 [", core.ColorText)
	x += len("O2 [")
	dst.DrawHLine(x, 1, filled, '#', barColor)
	dst.DrawHLine(x+filled, 1, barWidth-filled, '-', core.ColorDim)
	x += barWidth
	dst.DrawText(x, 1, oxygen, core.ColorText)
	x += len(oxygen)
	dst.DrawText(x, 1, gauges, core.ColorWater)
}

// renderWater floods every board row whose top edge lies below the surface.
func renderWater(dst *core.Screen, snap *Snapshot, ox, oy, boardW, boardH int) {
	if snap.WaterLevel <= 0 {
		return
	}
	rowPixels := snap.CellSize / cellRows
	for r := 0; r < boardH; r++ {
		if float64(r)*rowPixels < snap.SurfaceY {
			continue
		}
		dst.DrawHLine(ox, oy+r, boardW, '~', core.ColorWater)
	}
}

func renderWalls(dst *core.Screen, grid *maze.Grid, ox, oy int) {
	gw, gh := grid.Width(), grid.Height()
	for cy := 0; cy < gh; cy++ {
		for cx := 0; cx < gw; cx++ {
			idx := grid.Index(cx, cy)
			x, y := ox+cx*cellCols, oy+cy*cellRows

			dst.SetColored(x, y, '+', core.ColorWall)
			if grid.HasWall(idx, maze.Top) {
				dst.DrawHLine(x+1, y, cellCols-1, '-', core.ColorWall)
			}
			if grid.HasWall(idx, maze.Left) {
				dst.SetColored(x, y+1, '|', core.ColorWall)
			}
			if cx == gw-1 {
				dst.SetColored(x+cellCols, y, '+', core.ColorWall)
				if grid.HasWall(idx, maze.Right) {
					dst.SetColored(x+cellCols, y+1, '|', core.ColorWall)
				}
			}
			if cy == gh-1 {
				dst.SetColored(x, y+cellRows, '+', core.ColorWall)
				if grid.HasWall(idx, maze.Bottom) {
					dst.DrawHLine(x+1, y+cellRows, cellCols-1, '-', core.ColorWall)
				}
			}
		}
	}
	dst.SetColored(ox+gw*cellCols, oy+gh*cellRows, '+', core.ColorWall)
}

func renderEntities(dst *core.Screen, snap *Snapshot, ox, oy int) {
	toScreen := func(p core.Vec) (int, int) {
		return cellToScreen(p, snap.CellSize, snap.GridW, snap.GridH, ox, oy)
	}

	x, y := toScreen(snap.Exit)
	dst.SetColored(x, y, 'E', core.ColorExit)

	for _, d := range snap.Drains {
		c := core.ColorDrainOff
		if d.Activated {
			c = core.ColorDrainOn
		}
		x, y := toScreen(d.Pos)
		dst.SetColored(x, y, 'D', c)
	}

	for _, b := range snap.Bubbles {
		if b.Collected {
			continue
		}
		x, y := toScreen(b.Pos)
		dst.SetColored(x, y, 'o', core.ColorBubble)
	}

	pc := core.ColorPlayer
	if snap.Underwater {
		pc = core.ColorDiver
	}
	x, y = toScreen(snap.Player)
	dst.SetColored(x, y, '@', pc)
}

// cellToScreen maps a field position to the interior of its cell on screen.
// The left or right interior column is chosen by which half of the cell the
// position is in.
func cellToScreen(p core.Vec, cellSize float64, gw, gh, ox, oy int) (int, int) {
	fx, fy := p.X/cellSize, p.Y/cellSize
	cx := core.Clamp(int(math.Floor(fx)), 0, gw-1)
	cy := core.Clamp(int(math.Floor(fy)), 0, gh-1)

	x := ox + cx*cellCols + 1
	if fx-float64(cx) >= 0.5 {
		x++
	}
	return x, oy + cy*cellRows + 1
}

func renderOverlay(dst *core.Screen, c core.Color, title, detail, hint string) {
	w := max(len(title), len(detail), len(hint)) + 6
	h := 7
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2
	box := core.NewRect(x, y, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	cx, cy := box.Center()
	dst.DrawText(cx-len(title)/2, cy-2, title, c)
	dst.DrawText(cx-len(detail)/2, cy, detail, core.ColorText)
	dst.DrawText(cx-len(hint)/2, cy+2, hint, core.ColorDim)
}

func (g *Game) renderTooSmall(dst *core.Screen, needW, needH int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorWarning)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", needW, needH, dst.Width(), dst.Height()), core.ColorText)
	if g.variant != config.VariantCompact {
		dst.DrawTextCentered(y+1, "Resize the terminal or play the compact variant", core.ColorDim)
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
