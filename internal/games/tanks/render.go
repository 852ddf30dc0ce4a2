package tanks

import (
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/battle"
)

var categoryColors = [...]core.Color{
	battle.CategoryBlue:   core.ColorBrightBlue,
	battle.CategoryRed:    core.ColorBrightRed,
	battle.CategoryCyan:   core.ColorBrightCyan,
	battle.CategoryYellow: core.ColorBrightYellow,
}

var playerColors = [...]core.Color{
	battle.Player1: core.ColorBlue,
	battle.Player2: core.ColorCyan,
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start match")
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}
	if g.match == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.requiredSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d, resize to continue", w, h))
		return
	}

	g.renderBoard(dst)
	g.renderPanel(dst)

	switch {
	case g.match.Over():
		reason := "time is up"
		if g.match.EndReason() == battle.EndEliminated {
			reason = "a side was wiped out"
		}
		g.renderOverlay(dst, capitalize(g.match.Outcome().String()), fmt.Sprintf("%s - press R to restart", reason))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	m := g.match
	left := fmt.Sprintf(" %s  Turn %d  ", g.scenario.Title, m.Turn())
	dst.DrawText(0, 0, left)

	x := len([]rune(left))
	active := m.Active().String()
	dst.DrawTextColor(x, 0, active, playerColors[m.Active()])
	for i := range len(active) {
		dst.AddAttr(x+i, 0, core.AttrBold)
	}
	x += len(active)

	clocks := fmt.Sprintf("  Match %s  Turn %s", formatClock(m.RemainingSeconds()), formatClock(m.RemainingTurnSeconds()))
	dst.DrawText(x, 0, clocks)
}

// renderBoard draws the boxed grid, route, units, projectile and cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	m := g.match
	grid := m.Grid()
	size := grid.Size()

	dst.DrawBox(core.NewRect(boardX-1, boardY-1, size*cellWidth+2, size+2))

	for y := range size {
		for x := range size {
			c := battle.C(x, y)
			sx, sy := cellToScreen(c)
			if grid.IsBlocked(c) {
				dst.SetColor(sx, sy, '█', core.ColorGray)
				dst.SetColor(sx+1, sy, '█', core.ColorGray)
				continue
			}
			dst.SetColor(sx, sy, '·', core.ColorDarkGray)
		}
	}

	for _, c := range m.Route() {
		sx, sy := cellToScreen(c)
		dst.SetColor(sx, sy, '∘', core.ColorGreen)
	}

	selected, hasSelection := m.Selected()
	for _, u := range m.Units() {
		sx, sy := cellToScreen(u.Pos)
		color := categoryColors[u.Category]
		dst.SetColor(sx, sy, unitGlyph(u), color)
		dst.SetColor(sx+1, sy, healthGlyph(u.Health), color)
		if hasSelection && u.ID == selected {
			dst.AddAttr(sx, sy, core.AttrBold|core.AttrReverse)
			dst.AddAttr(sx+1, sy, core.AttrBold|core.AttrReverse)
		}
	}

	if pos, ok := m.Projectile(); ok {
		px, py := pos.Floor()
		sx, sy := cellToScreen(battle.C(px, py))
		dst.SetColor(sx, sy, '*', core.ColorOrange)
	}

	if !m.Over() {
		sx, sy := cellToScreen(g.cursor)
		dst.AddAttr(sx, sy, core.AttrReverse)
		dst.AddAttr(sx+1, sy, core.AttrReverse)
	}
}

// renderPanel draws the per-player side panel and key help.
func (g *Game) renderPanel(dst *core.Screen) {
	m := g.match
	x := boardX + m.Grid().Size()*cellWidth + 2
	y := boardY - 1

	for _, p := range []battle.Player{battle.Player1, battle.Player2} {
		s1, s2 := m.Survivors()
		survivors := s1
		if p == battle.Player2 {
			survivors = s2
		}

		dst.DrawTextColor(x, y, p.String(), playerColors[p])
		if p == m.Active() {
			dst.DrawText(x+len(p.String()), y, " ◀")
		}
		y++
		dst.DrawText(x+1, y, fmt.Sprintf("Tanks left: %d", survivors))
		y++
		if pending := m.PendingPowerUp(p); pending != battle.PowerUpNone {
			dst.DrawTextColor(x+1, y, "Power-up: "+pending.String(), core.ColorYellow)
			y++
			dst.DrawTextColor(x+2, y, truncate(pending.Effect(), panelWidth-2), core.ColorGray)
			y++
		}
		for _, armed := range m.Armed(p).List() {
			dst.DrawTextColor(x+1, y, "Armed: "+armed.String(), core.ColorGreen)
			y++
		}
		if n := m.BonusTurns(p); n > 0 {
			dst.DrawText(x+1, y, fmt.Sprintf("Bonus turns: %d", n))
			y++
		}
		y++
	}

	dst.DrawText(x, y, "Mode: "+m.Mode().String())
	y++
	if s, ok := m.PendingStrategy(); ok {
		dst.DrawText(x, y, "Route: "+s.String())
		y++
	}
	if u, ok := m.UnitAt(g.cursor); ok {
		dst.DrawTextColor(x, y, fmt.Sprintf("%s tank %d: %d hp", u.Category, u.ID, u.Health), categoryColors[u.Category])
		y++
	}
	y++
	dst.DrawText(x, y, truncate(g.message, panelWidth-1))

	help := "arrows/click cursor  enter select  m move  f fire  u power-up  esc cancel  p pause  q quit"
	dst.DrawText(0, dst.Height()-1, truncate(help, dst.Width()))
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 6
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	dst.DrawBox(core.NewRect(x, y, w, h))
	dst.DrawTextCentered(y+1, title)
	dst.DrawTextCentered(y+3, subtitle)
}

func unitGlyph(u battle.Unit) rune {
	if u.Category.Heavy() {
		return '■'
	}
	return '▲'
}

func healthGlyph(health int) rune {
	switch {
	case health > 2*battle.MaxHealth/3:
		return '█'
	case health > battle.MaxHealth/3:
		return '▓'
	default:
		return '░'
	}
}

func formatClock(seconds float64) string {
	s := int(seconds + 0.999)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
