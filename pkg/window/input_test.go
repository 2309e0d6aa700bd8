package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/voc/voctozoom/pkg/geometry"
	"github.com/voc/voctozoom/pkg/interaction"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   sdl.Event
		want interaction.Event
		ok   bool
	}{
		{name: "quit", in: &sdl.QuitEvent{Type: sdl.QUIT}, want: interaction.Key{Action: interaction.Quit}, ok: true},
		{name: "left down", in: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 3, Y: 4},
			want: interaction.ButtonDown{Button: interaction.Left, Pos: geometry.Point{X: 3, Y: 4}}, ok: true},
		{name: "right up", in: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT, X: 5, Y: 6},
			want: interaction.ButtonUp{Button: interaction.Right, Pos: geometry.Point{X: 5, Y: 6}}, ok: true},
		{name: "middle", in: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_MIDDLE}},
		{name: "motion", in: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 7, Y: 8},
			want: interaction.Motion{Pos: geometry.Point{X: 7, Y: 8}}, ok: true},
		{name: "key up", in: &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_u}}},
		{name: "key repeat", in: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_u}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate() = %#v %v, want %#v %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
