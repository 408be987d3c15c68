// Package input maps host input events onto the control signals the
// simulation reads each tick.
package input

// Key identifies a keyboard key. Printable keys use their rune value;
// special keys use the negative constants below.
type Key rune

const (
	KeyNone Key = 0

	KeyArrowUp Key = -(iota + 1)
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyCtrlC
)

// DefaultThrustKey is the key that fires the ship's engine.
const DefaultThrustKey Key = 'w'

// Controls is the per-tick control state consumed by the simulation.
type Controls struct {
	PointerX, PointerY float64 // Field-local pointer position
	Fire               bool    // Pointer button held
	Thrust             bool    // Thrust key held
}

// Mapper caches the most recent input. It is not an event queue: a tick
// sees whatever was last reported, and events between ticks are not replayed.
type Mapper struct {
	thrustKey Key
	controls  Controls
}

// NewMapper creates a mapper with the given thrust key.
func NewMapper(thrustKey Key) *Mapper {
	if thrustKey == KeyNone {
		thrustKey = DefaultThrustKey
	}
	return &Mapper{thrustKey: thrustKey}
}

// PointerMove records the pointer position in field coordinates.
func (m *Mapper) PointerMove(x, y float64) {
	m.controls.PointerX = x
	m.controls.PointerY = y
}

// PointerDown starts firing.
func (m *Mapper) PointerDown() {
	m.controls.Fire = true
}

// PointerUp stops firing.
func (m *Mapper) PointerUp() {
	m.controls.Fire = false
}

// KeyDown starts thrusting if k is the thrust key. Other keys are ignored.
func (m *Mapper) KeyDown(k Key) {
	if m.isThrust(k) {
		m.controls.Thrust = true
	}
}

// KeyUp stops thrusting if k is the thrust key.
func (m *Mapper) KeyUp(k Key) {
	if m.isThrust(k) {
		m.controls.Thrust = false
	}
}

// Release drops held buttons and keys, keeping the pointer position.
// Hosts call it when they lose focus or the session restarts.
func (m *Mapper) Release() {
	m.controls.Fire = false
	m.controls.Thrust = false
}

// Controls returns the current control state.
func (m *Mapper) Controls() Controls {
	return m.controls
}

// ThrustKey returns the designated thrust key.
func (m *Mapper) ThrustKey() Key {
	return m.thrustKey
}

func (m *Mapper) isThrust(k Key) bool {
	return k == m.thrustKey || foldCase(k) == foldCase(m.thrustKey)
}

// foldCase maps ASCII upper case letters to lower case.
func foldCase(k Key) Key {
	if k >= 'A' && k <= 'Z' {
		return k + ('a' - 'A')
	}
	return k
}
