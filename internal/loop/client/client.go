// Package client runs a session in a terminal: it reads keyboard and mouse
// input, ticks the session once per frame and renders the result.
package client

import (
	"context"
	"io"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	session      *loop.Session
	mapper       *input.Mapper
	inputStream  *input.Stream
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	termSizeFunc draw.TermSizeFunc
	effects      *Effects
	state        *ClientState
	outlineBuf   []draw.Point // Reused for asteroid polygons
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	ThrustKey    input.Key     // Defaults to input.DefaultThrustKey
	KeyHold      time.Duration // Defaults to config.ThrustKeyHold
}

// New creates a client that drives session from the terminal behind r and w.
func New(session *loop.Session, r io.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	hold := opts.KeyHold
	if hold <= 0 {
		hold = config.ThrustKeyHold
	}

	field := session.Snapshot().Field

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		session:      session,
		mapper:       input.NewMapper(opts.ThrustKey),
		inputStream:  input.StartStream(r, hold),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		termSizeFunc: termSizeFunc,
		effects:      NewEffects(nil),
		state:        NewClientState(),
	}
}

// Run drives the session until ctx is cancelled, the player quits or the
// input stream ends. The terminal is restored before Run returns.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		c.inputStream.Close()
		draw.ClearScreen(c.writer)
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()

	return loop.Run(ctx, c.session.Tuning().FrameTime(), c.frame)
}

// frame is one Input → Update → Draw cycle.
func (c *Client) frame() error {
	c.processInput(time.Now())
	if c.state.quit {
		return loop.ErrQuit
	}

	c.updateScreen()

	c.session.Tick(c.mapper.Controls())

	snapshot := c.session.Snapshot()
	if snapshot.Stats.Tick != c.state.lastTick {
		c.state.lastTick = snapshot.Stats.Tick
		c.effects.Apply(snapshot.Events)
	}
	c.effects.Update()

	return c.drawFrame(snapshot)
}

// processInput drains the terminal input and feeds it to the mapper.
func (c *Client) processInput(now time.Time) {
	events := c.inputStream.Read(now)
	if c.inputStream.Closed() {
		c.state.quit = true
	}
	for _, e := range events {
		c.handleEvent(e)
	}
}

func (c *Client) handleEvent(e input.Event) {
	switch e.Kind {
	case input.EventPointerMove:
		x, y := c.canvas.TerminalToLogical(e.Col, e.Row)
		c.mapper.PointerMove(x, y)
	case input.EventPointerDown:
		c.mapper.PointerDown()
		if c.session.Snapshot().Stats.State == loop.StateReady {
			c.session.Start()
		}
	case input.EventPointerUp:
		c.mapper.PointerUp()
	case input.EventKeyDown:
		c.keyDown(e.Key)
	case input.EventKeyUp:
		c.mapper.KeyUp(c.thrustAlias(e.Key))
	}
}

func (c *Client) keyDown(k input.Key) {
	switch k {
	case 'q', 'Q', input.KeyCtrlC:
		c.state.quit = true
		return
	case 'r', 'R':
		c.reset()
		return
	case ' ', input.KeyEnter:
		c.session.Start()
		return
	}
	c.mapper.KeyDown(c.thrustAlias(k))
}

// thrustAlias lets the up arrow act as the thrust key.
func (c *Client) thrustAlias(k input.Key) input.Key {
	if k == input.KeyArrowUp {
		return c.mapper.ThrustKey()
	}
	return k
}

func (c *Client) reset() {
	c.session.Reset()
	c.mapper.Release()
	c.inputStream.ReleaseKeys()
	c.effects.Clear()
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
