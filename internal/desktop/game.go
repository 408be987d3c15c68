// Package desktop runs a session in a window using ebiten.
package desktop

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/loop/client"
)

const (
	shipSize   = 18.0
	bulletSize = 2.5
	lineWidth  = 1.5
)

// Game adapts a session to ebiten.Game. Each Update is one tick.
type Game struct {
	session  *loop.Session
	mapper   *input.Mapper
	effects  *client.Effects
	lastTick uint64
	outline  []draw.Point
}

var _ ebiten.Game = (*Game)(nil)

// New creates a window host for session.
func New(session *loop.Session) *Game {
	return &Game{
		session: session,
		mapper:  input.NewMapper(input.DefaultThrustKey),
		effects: client.NewEffects(nil),
	}
}

// Update reads input, ticks the session and advances effects.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.processInput()

	g.session.Tick(g.mapper.Controls())

	snapshot := g.session.Snapshot()
	if snapshot.Stats.Tick != g.lastTick {
		g.lastTick = snapshot.Stats.Tick
		g.effects.Apply(snapshot.Events)
	}
	g.effects.Update()
	return nil
}

func (g *Game) processInput() {
	// Layout maps the window onto the field, so the cursor is already in
	// field coordinates.
	x, y := ebiten.CursorPosition()
	g.mapper.PointerMove(float64(x), float64(y))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.mapper.PointerDown()
		g.session.Start()
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.mapper.PointerUp()
	}

	thrust := g.mapper.ThrustKey()
	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.mapper.KeyDown(thrust)
	}
	if !ebiten.IsKeyPressed(ebiten.KeyW) && !ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.mapper.KeyUp(thrust)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
		g.mapper.Release()
		g.effects.Clear()
	}

	// Releases are lost while unfocused
	if !ebiten.IsFocused() {
		g.mapper.Release()
	}
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snapshot := g.session.Snapshot()
	screen.Fill(colornames.Black)

	for i := range snapshot.Asteroids {
		g.outline = snapshot.Asteroids[i].Outline(g.outline)
		strokePolygon(screen, g.outline, colornames.Lightgrey)
	}

	for _, b := range snapshot.Bullets {
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), bulletSize, colornames.Gold, true)
	}

	g.effects.Each(func(x, y, life float64) {
		vector.DrawFilledCircle(screen, float32(x), float32(y), 1.5, withAlpha(colornames.Orange, life), true)
	})

	ship := snapshot.Ship
	outline := ship.Outline(shipSize)
	strokePolygon(screen, outline[:], withAlpha(colornames.Cyan, ship.Opacity))

	g.drawHUD(screen, snapshot)
}

func (g *Game) drawHUD(screen *ebiten.Image, snapshot *loop.Snapshot) {
	stats := snapshot.Stats
	ebitenutil.DebugPrint(screen, hudLine(stats))

	cx := int(snapshot.Field.Width) / 2
	cy := int(snapshot.Field.Height) / 2
	switch stats.State {
	case loop.StateReady:
		ebitenutil.DebugPrintAt(screen, "ASTEROIDS", cx-27, cy-40)
		ebitenutil.DebugPrintAt(screen, "Mouse aims, click fires, W thrusts", cx-102, cy-10)
		ebitenutil.DebugPrintAt(screen, "Click or press SPACE to start", cx-87, cy+10)
	case loop.StateGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx-27, cy-20)
		ebitenutil.DebugPrintAt(screen, "Press R to play again", cx-63, cy)
	}
}

// Layout fixes the logical screen to the field size.
func (g *Game) Layout(_, _ int) (int, int) {
	f := g.session.Snapshot().Field
	return int(f.Width), int(f.Height)
}

func hudLine(stats loop.Stats) string {
	hp := min(max(stats.HitPoints, 0), stats.MaxHitPoints)
	pips := strings.Repeat("#", hp) + strings.Repeat("-", stats.MaxHitPoints-hp)
	return fmt.Sprintf("Score: %d  Destroyed: %d  HP [%s]", stats.Score, stats.Destroyed, pips)
}

func strokePolygon(screen *ebiten.Image, pts []draw.Point, clr color.Color) {
	n := len(pts)
	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), lineWidth, clr, true)
	}
}

// withAlpha scales an opaque color to the given opacity in [0,1].
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	alpha = min(max(alpha, 0), 1)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}
