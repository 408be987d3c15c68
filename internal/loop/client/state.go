package client

import "github.com/tomz197/asteroids-arcade/internal/loop"

// ClientState holds what the client tracks between frames. Game state
// itself lives in the session.
type ClientState struct {
	prevState loop.GameState // Phase drawn last frame, for full clears on change
	lastTick  uint64         // Tick whose events were already turned into effects
	quit      bool
	drawn     bool // At least one frame rendered
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{}
}
