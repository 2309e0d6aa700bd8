package window

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/interaction"
)

// Keys maps keyboard keys to actions.
var Keys = map[sdl.Keycode]interaction.Action{
	sdl.K_u:         interaction.Undo,
	sdl.K_BACKSPACE: interaction.Undo,
	sdl.K_r:         interaction.Reset,
	sdl.K_s:         interaction.Screenshot,
	sdl.K_q:         interaction.Quit,
	sdl.K_ESCAPE:    interaction.Quit,
}

func translate(e sdl.Event) (interaction.Event, bool) {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return interaction.Key{Action: interaction.Quit}, true
	case *sdl.MouseButtonEvent:
		b := button(e.Button)
		if b == 0 {
			return nil, false
		}
		pos := geometry.Point{X: int(e.X), Y: int(e.Y)}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			return interaction.ButtonDown{Button: b, Pos: pos}, true
		}
		return interaction.ButtonUp{Button: b, Pos: pos}, true
	case *sdl.MouseMotionEvent:
		return interaction.Motion{Pos: geometry.Point{X: int(e.X), Y: int(e.Y)}}, true
	case *sdl.MouseWheelEvent:
		steps := int(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			steps = -steps
		}
		return interaction.Wheel{Pos: cursor(), Steps: steps}, true
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return nil, false
		}
		if a, ok := Keys[e.Keysym.Sym]; ok {
			return interaction.Key{Pos: cursor(), Action: a}, true
		}
	}
	return nil, false
}

func button(b uint8) interaction.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return interaction.Left
	case sdl.BUTTON_RIGHT:
		return interaction.Right
	}
	return 0
}

func cursor() geometry.Point {
	x, y, _ := sdl.GetMouseState()
	return geometry.Point{X: int(x), Y: int(y)}
}
