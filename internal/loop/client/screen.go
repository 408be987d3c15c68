package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/loop"
)

// shipSize is the drawn ship radius in field units.
const shipSize = 22.0

// bulletSize is the drawn bullet radius in field units.
const bulletSize = 3.0

// drawFrame draws the current frame.
func (c *Client) drawFrame(snapshot *loop.Snapshot) error {
	// On game state transitions, do a full terminal clear so UI elements
	// from the previous state don't persist on screen.
	if !c.state.drawn || snapshot.Stats.State != c.state.prevState {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevState = snapshot.Stats.State
		c.state.drawn = true
	}

	c.canvas.Clear()
	c.drawEntities(snapshot)
	c.effects.Draw(c.canvas)

	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

func (c *Client) drawEntities(snapshot *loop.Snapshot) {
	for i := range snapshot.Asteroids {
		c.outlineBuf = snapshot.Asteroids[i].Outline(c.outlineBuf)
		c.canvas.DrawPolygon(c.outlineBuf, false)
	}

	for _, b := range snapshot.Bullets {
		c.canvas.DrawCircle(b.X, b.Y, bulletSize)
	}

	// Half-blocks have no alpha: a ship at less than half opacity is drawn
	// as an outline, so invulnerability flickers between solid and hollow.
	ship := snapshot.Ship
	outline := ship.Outline(shipSize)
	c.canvas.DrawPolygon(outline[:], ship.Opacity >= 0.5)
}

// text writes s at a 1-based canvas position and marks the cells so the
// canvas repaints them once the text is gone.
func (c *Client) text(col, row int, s string) {
	width := len([]rune(s))
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 || col+width-1 > c.canvas.TerminalWidth() {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, width)
}

// centered writes s centered on column centerX.
func (c *Client) centered(centerX, row int, s string) {
	c.text(centerX-len([]rune(s))/2, row, s)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *loop.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	c.drawHUD(termWidth, snapshot.Stats)

	switch snapshot.Stats.State {
	case loop.StateReady:
		c.drawStartScreen(centerX, centerY)
	case loop.StateGameOver:
		c.drawGameOverScreen(centerX, centerY, snapshot.Stats)
	}
}

// drawHUD draws score, kills and hit points. Text fields use fixed-width
// formatting so shrinking values don't leave residual characters.
func (c *Client) drawHUD(termWidth int, stats loop.Stats) {
	c.text(2, 1, fmt.Sprintf("Score: %-7d Destroyed: %-5d", stats.Score, stats.Destroyed))

	hp := hitPointPips(stats.HitPoints, stats.MaxHitPoints)
	c.text(termWidth-len([]rune(hp))-1, 1, hp)
}

// hitPointPips renders hit points as filled and empty pips.
func hitPointPips(hp, maxHP int) string {
	hp = min(max(hp, 0), maxHP)
	return "HP " + strings.Repeat("■", hp) + strings.Repeat("□", maxHP-hp)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`    _   ___ _____ ___ ___  ___ ___ ___  ___  `,
		`   /_\ / __|_   _| __| _ \/ _ \_ _|   \/ __| `,
		`  / _ \\__ \ | | | _||   / (_) | || |) \__ \ `,
		` /_/ \_\___/ |_| |___|_|_\\___/___|___/|___/ `,
	}

	titleStartY := centerY - 7
	for i, line := range titleArt {
		c.centered(centerX, titleStartY+i, line)
	}

	controlsY := titleStartY + len(titleArt) + 2
	c.centered(centerX, controlsY, "Controls")

	controlLines := []string{
		"Mouse  . . . . . . . Aim",
		"Click / hold . . . . Fire",
		"W / Up  . . . . . Thrust",
		"R  . . . . . . . . Reset",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE or click to start  <<")
	}
}

// drawGameOverScreen draws the game over overlay.
func (c *Client) drawGameOverScreen(centerX, centerY int, stats loop.Stats) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleStartY := centerY - 5
	for i, line := range titleArt {
		c.centered(centerX, titleStartY+i, line)
	}

	c.centered(centerX, titleStartY+len(titleArt)+1, fmt.Sprintf("Score: %d", stats.Score))
	c.centered(centerX, titleStartY+len(titleArt)+2, fmt.Sprintf("Asteroids destroyed: %d", stats.Destroyed))

	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(centerX, titleStartY+len(titleArt)+4, ">>  Press R to play again  <<")
	}
}
