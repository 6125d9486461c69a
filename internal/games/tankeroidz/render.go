package tankeroidz

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tankeroidz/internal/core"
)

// Visual characters for rendering
const (
	BulletChar   = '•'
	GunChar      = '·'
	EnemySmall   = 'o'
	EnemyMedium  = 'O'
	EnemyLarge   = '@'
	BarFull      = '█'
	BarEmpty     = '░'
	hudBarLength = 10
)

// Tank glyphs by heading, counter-clockwise from up in 45 degree steps.
var tankGlyphs = [8]rune{'▲', '◤', '◀', '◣', '▼', '◢', '▶', '◥'}

const (
	minScreenW = 40
	minScreenH = 12
)

// viewport maps field pixels to screen cells inside the arena box.
type viewport struct {
	x0, y0 int
	sx, sy float64
}

func newViewport(field core.Bounds, screenW, screenH int) viewport {
	// Row 0 is the HUD; the arena box spans rows 1..H-1.
	innerW, innerH := screenW-2, screenH-3
	return viewport{
		x0: 1,
		y0: 2,
		sx: float64(innerW-1) / field.W,
		sy: float64(innerH-1) / field.H,
	}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return v.x0 + int(math.Round(p.X*v.sx)), v.y0 + int(math.Round(p.Y*v.sy))
}

// TankGlyph returns the arrow used for a rotation in degrees.
func TankGlyph(rot float64) rune {
	norm := math.Mod(rot, 360)
	if norm < 0 {
		norm += 360
	}
	return tankGlyphs[int(math.Round(norm/45))%8]
}

func enemyGlyph(radius float64) rune {
	switch {
	case radius >= 9:
		return EnemyLarge
	case radius >= 6:
		return EnemyMedium
	default:
		return EnemySmall
	}
}

// Bar renders a resource fraction as a fixed-width gauge.
func Bar(frac float64, width int) string {
	filled := int(math.Round(core.ClampF(frac, 0, 1) * float64(width)))
	return strings.Repeat(string(BarFull), filled) + strings.Repeat(string(BarEmpty), width-filled)
}

// Render draws the current round into dst. The screen is pre-cleared.
func (g *Game) Render(dst *core.Screen) {
	if g.round == nil {
		return
	}
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small (need %dx%d)", minScreenW, minScreenH))
		return
	}
	RenderRound(g.round, dst)
}

// RenderRound draws a round's HUD, arena and entities, plus the pause or
// game-over overlay.
func RenderRound(r *Round, dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	renderHUD(r, dst)
	dst.DrawBox(core.NewRect(0, 1, w, h-1))

	vp := newViewport(r.Field(), w, h)
	reg := r.Registry()

	for _, p := range reg.PowerUps.Live() {
		x, y := vp.cell(p.Pos)
		color := core.ColorCyan
		if p.Kind.Tint != nil {
			color = p.Kind.Tint.Color()
		}
		dst.SetColored(x, y, p.Kind.Glyph(), color)
	}
	for _, e := range reg.Enemies.Live() {
		x, y := vp.cell(e.Pos)
		dst.SetColored(x, y, enemyGlyph(e.Radius()), core.ColorBrightRed)
	}
	for _, b := range reg.Bullets.Live() {
		x, y := vp.cell(b.Pos)
		dst.SetColored(x, y, BulletChar, core.ColorBrightYellow)
	}

	t := r.Tank()
	gx, gy := vp.cell(t.Gun)
	tx, ty := vp.cell(t.Pos)
	if gx != tx || gy != ty {
		dst.SetColored(gx, gy, GunChar, core.ColorWhite)
	}
	dst.SetColored(tx, ty, TankGlyph(t.Rot), t.Tint().Color())

	switch r.State() {
	case StatePaused:
		drawOverlay(dst, core.ColorBrightYellow, "PAUSED", "P to resume  Q to quit")
	case StateEnded:
		drawOverlay(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d", r.Score()),
			"R to restart  Q to quit")
	}
}

func renderHUD(r *Round, dst *core.Screen) {
	t := r.Tank()
	x := 0
	put := func(text string, c core.Color) {
		dst.DrawTextColored(x, 0, text, c)
		x += len([]rune(text))
	}

	put(fmt.Sprintf("SCORE %-6d ", r.Score()), core.ColorWhite)
	put("HP ", core.ColorGray)
	put(Bar(t.HealthFraction(), hudBarLength), core.ColorBrightGreen)
	put(" PW ", core.ColorGray)
	put(Bar(t.PowerFraction(), hudBarLength), core.ColorCyan)

	rate := r.TickRate()
	for _, a := range t.ActiveModifiers() {
		_, remaining, _ := t.ModifierOn(a)
		label := " " + a.String()
		if remaining > 0 {
			label += fmt.Sprintf(" %ds", (remaining+rate-1)/rate)
		}
		put(label, core.ColorOrange)
	}
}

func drawOverlay(dst *core.Screen, titleColor core.Color, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW, boxH := width+4, len(lines)+4
	bx := (dst.Width() - boxW) / 2
	by := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(bx, by, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(bx, by, boxW, boxH))

	center := func(y int, text string, c core.Color) {
		dst.DrawTextColored(bx+(boxW-len([]rune(text)))/2, y, text, c)
	}
	center(by+1, title, titleColor)
	for i, l := range lines {
		center(by+2+i, l, core.ColorDefault)
	}
}
