package interaction

import "github.com/voc/voctozoom/pkg/geometry"

type Button int

const (
	Left Button = iota + 1
	Right
)

type Action int

const (
	Undo Action = iota + 1
	Reset
	Screenshot
	Quit
)

// Event is a pointer or keyboard input in display coordinates.
type Event interface{ isEvent() }

type ButtonDown struct {
	Button Button
	Pos    geometry.Point
}

type ButtonUp struct {
	Button Button
	Pos    geometry.Point
}

type Motion struct{ Pos geometry.Point }

// Wheel zooms in for positive steps and out for negative ones.
type Wheel struct {
	Pos   geometry.Point
	Steps int
}

// Key is a key bound to an action, Pos is the cursor position.
type Key struct {
	Pos    geometry.Point
	Action Action
}

func (ButtonDown) isEvent() {}
func (ButtonUp) isEvent()   {}
func (Motion) isEvent()     {}
func (Wheel) isEvent()      {}
func (Key) isEvent()        {}
