package tankeroidz

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tankeroidz/internal/core"
)

func TestTankGlyph(t *testing.T) {
	tests := []struct {
		rot  float64
		want rune
	}{
		{0, '▲'},
		{45, '◤'},
		{90, '◀'},
		{180, '▼'},
		{-90, '▶'},
		{-45, '◥'},
		{360, '▲'},
		{22, '▲'},
		{23, '◤'},
	}

	for _, tt := range tests {
		if got := TankGlyph(tt.rot); got != tt.want {
			t.Errorf("TankGlyph(%v) = %q, expected %q", tt.rot, got, tt.want)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{1, "██████████"},
		{0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{-0.2, "░░░░░░░░░░"},
		{1.7, "██████████"},
	}

	for _, tt := range tests {
		if got := Bar(tt.frac, 10); got != tt.want {
			t.Errorf("Bar(%v) = %q, expected %q", tt.frac, got, tt.want)
		}
	}
}

func TestRenderRunning(t *testing.T) {
	g := newTestGame(t, 5)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.HasPrefix(hud, "SCORE 0") {
		t.Errorf("HUD row = %q, expected score first", hud)
	}
	if !strings.ContainsRune(screen.String(), '▲') {
		t.Error("tank glyph not drawn")
	}
	if strings.Contains(screen.String(), "PAUSED") {
		t.Error("running round should not show the pause overlay")
	}
}

func TestRenderShowsActiveModifiers(t *testing.T) {
	g := newTestGame(t, 5)
	kind, _ := g.Round().Catalog().Lookup("speedboost")
	g.Round().Tank().ApplyPowerUp(&PowerUp{Kind: kind})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "move_speed 10s") {
		t.Errorf("HUD row = %q, expected the speed boost with 10s left", hud)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 5)
	g.Step(press(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused round should show the pause overlay")
	}

	g.Step(press(core.ActionPause))
	g.Round().Tank().Health = 0
	g.Step(core.NewInputFrame())

	screen.Clear()
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "R to restart") {
		t.Errorf("ended round should show the game over overlay, got:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 5)
	screen := core.NewScreen(39, 12)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected the too-small message")
	}
}

func TestRenderColorsEntities(t *testing.T) {
	r := newTestRound(t, nil)
	addEnemy(r, 400, 250, 10)

	screen := core.NewScreen(80, 24)
	RenderRound(r, screen)

	vp := newViewport(r.Field(), 80, 24)
	x, y := vp.cell(core.Vec2{X: 400, Y: 250})
	cell := screen.GetCell(x, y)
	if cell.Rune != EnemyLarge || cell.Color != core.ColorBrightRed {
		t.Errorf("enemy cell = %q/%v, expected %q in bright red", cell.Rune, cell.Color, EnemyLarge)
	}

	tx, ty := vp.cell(r.Tank().Pos)
	if got := screen.GetCell(tx, ty).Color; got != r.Tank().Tint().Color() {
		t.Errorf("tank color = %v, expected %v", got, r.Tank().Tint().Color())
	}
}
