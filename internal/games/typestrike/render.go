package typestrike

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/typestrike/internal/core"
)

// Layout of the terminal screen.
const (
	hudRows    = 2 // Status line + separator
	groundRows = 2 // Player line + ground line
	minScreenW = 40
	minScreenH = 14
)

// Render draws the game to the screen. World coordinates are scaled to
// cells; the host's viewport aspect keeps the scaling roughly uniform.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		return
	}

	v := g.View()

	switch v.Phase {
	case PhaseMenu:
		g.renderMenu(dst, v)
		return
	case PhasePlaying, PhaseLevelComplete, PhaseGameOver:
		g.renderHUD(dst, v)
		g.renderField(dst, v)
	}

	switch {
	case v.Phase == PhaseLevelComplete && v.Report != nil:
		g.renderReport(dst, v.Report, "LEVEL COMPLETE!", core.ColorBrightGreen, "SPACE next level   M menu")
	case v.Phase == PhaseGameOver && v.Report != nil:
		g.renderReport(dst, v.Report, "GAME OVER", core.ColorBrightRed, "SPACE/R retry   M menu")
	case v.Paused:
		drawCenteredBox(dst, []string{"PAUSED", "", "ESC to resume"}, core.ColorBrightYellow)
	}
}

// ViewportFor returns the world viewport for a screen of cols x rows cells.
// The world height is fixed; the width follows the play area's aspect,
// counting a cell as twice as tall as it is wide.
func ViewportFor(cols, rows int, worldH float64) core.Viewport {
	fieldH := max(rows-hudRows-groundRows, 1)
	return core.Viewport{
		W: worldH * float64(cols) / float64(2*fieldH),
		H: worldH,
	}
}

// Tint returns the flash overlay color and its current alpha.
func (g *Game) Tint() (core.RGBA, uint8) {
	return g.flash.Color, g.flash.Alpha()
}

// shakeOffset is the horizontal camera jitter in cells. It is derived from
// the tick so rendering never draws from the simulation's random source.
func (g *Game) shakeOffset(magnitude float64) int {
	if magnitude <= 0 {
		return 0
	}
	return int(math.Round(magnitude / 2 * math.Sin(float64(g.tick)*1.7)))
}

// toCell maps a world position to a screen cell inside the play area.
func toCell(dst *core.Screen, vp core.Viewport, pos core.Vec2) (x, y int) {
	fieldH := dst.Height() - hudRows - groundRows
	x = int(pos.X / vp.W * float64(dst.Width()))
	y = hudRows + int(math.Floor(pos.Y/vp.H*float64(fieldH)))
	return x, y
}

func (g *Game) renderHUD(dst *core.Screen, v View) {
	hearts := strings.Repeat("♥", v.Lives) + strings.Repeat("♡", max(v.MaxLives-v.Lives, 0))

	timeText := "∞"
	if !math.IsInf(v.TimeRemaining, 1) {
		timeText = fmt.Sprintf("%.0fs", math.Ceil(v.TimeRemaining))
	}

	left := fmt.Sprintf(" %s %s", v.Level.ID, v.Level.Name)
	right := fmt.Sprintf("%s  Score %d  Combo %d  Acc %.0f%%  Time %s ",
		hearts, v.Score, v.Combo, v.Accuracy, timeText)

	dst.DrawText(0, 0, left, core.ColorBrightWhite)
	dst.DrawText(dst.Width()-len([]rune(right)), 0, right, core.ColorBrightWhite)
	for i, r := range []rune(hearts) {
		c := core.ColorBrightRed
		if r == '♡' {
			c = core.ColorGray
		}
		dst.SetCell(dst.Width()-len([]rune(right))+i, 0, r, c)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

func (g *Game) renderField(dst *core.Screen, v View) {
	dx := g.shakeOffset(v.Shake)
	fieldBottom := dst.Height() - groundRows

	for _, p := range v.Particles {
		x, y := toCell(dst, v.Viewport, p.Pos)
		if y < hudRows || y >= fieldBottom {
			continue
		}
		glyph, c := '.', core.ColorYellow
		switch {
		case p.LifeFraction > 0.66:
			glyph, c = '*', core.ColorBrightYellow
		case p.LifeFraction > 0.33:
			glyph, c = '+', core.ColorOrange
		}
		dst.SetCell(x+dx, y, glyph, c)
	}

	for _, l := range v.Letters {
		x, y := toCell(dst, v.Viewport, l.Pos)
		if y < hudRows || y >= fieldBottom {
			continue
		}
		c := LetterColor
		if l.Targeted {
			c = core.ColorBrightYellow
		}
		dst.SetCell(x+dx, y, l.Char, c)
	}

	px, _ := toCell(dst, v.Viewport, v.PlayerPos)
	dst.DrawText(px-1+dx, fieldBottom, "/^\\", core.ColorBrightGreen)
	dst.DrawHLine(0, fieldBottom+1, dst.Width(), '▀', core.ColorGreen)
}

func (g *Game) renderMenu(dst *core.Screen, v View) {
	y := dst.Height()/2 - 6
	dst.DrawTextCentered(y, "T Y P E   S T R I K E", core.ColorBrightCyan)
	dst.DrawTextCentered(y+1, "Type the falling letters before they hit the ground", core.ColorGray)

	lvl := v.SelectedLevel
	title := fmt.Sprintf("◀  Level %d: %s  ▶", v.Selected+1, lvl.Name)
	if lvl.IsEndless() {
		title = fmt.Sprintf("◀  %s (tier %d)  ▶", lvl.Name, v.Selected-v.TotalLevels+1)
	}
	dst.DrawTextCentered(y+4, title, core.ColorBrightWhite)
	dst.DrawTextCentered(y+5, lvl.Description, core.ColorWhite)
	dst.DrawTextCentered(y+6, "Letters: "+spaced(lvl.Letters), core.ColorCyan)

	dst.DrawTextCentered(y+9, "SPACE start   ←/→ choose level", core.ColorBrightYellow)
	if n := len(v.Achievements); n > 0 {
		dst.DrawTextCentered(y+11, fmt.Sprintf("Achievements: %d/%d", n, len(achievementList)), core.ColorMagenta)
	}
}

func (g *Game) renderReport(dst *core.Screen, r *Report, title string, c core.Color, hint string) {
	lines := []string{
		title,
		"",
		fmt.Sprintf("%s %s", r.LevelID, r.LevelName),
		fmt.Sprintf("Score %d   Accuracy %d%%   WPM %d", r.Score, r.Accuracy, r.WPM),
		fmt.Sprintf("Max combo %d   Letters %d/%d", r.MaxCombo, r.Correct, r.Total),
	}
	if len(r.WeakLetters) > 0 {
		chars := make([]rune, len(r.WeakLetters))
		for i, w := range r.WeakLetters {
			chars[i] = w.Char
		}
		lines = append(lines, "Practice: "+spaced(chars))
	}
	lines = append(lines, "")
	lines = append(lines, wrap(r.Feedback, dst.Width()-8)...)
	lines = append(lines, "", hint)

	drawCenteredBox(dst, lines, c)
}

// drawCenteredBox draws lines inside a bordered box in the middle of dst.
// The first line uses the given color.
func drawCenteredBox(dst *core.Screen, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((dst.Width()-w-4)/2, (dst.Height()-len(lines)-2)/2, w+4, len(lines)+2)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		lc := core.ColorWhite
		if i == 0 {
			lc = c
		}
		dst.DrawTextCentered(box.Y+1+i, l, lc)
	}
}

// spaced joins runes with single spaces.
func spaced(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		switch {
		case cur == "":
			cur = word
		case len([]rune(cur))+1+len([]rune(word)) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
