package channel

import "github.com/voc/voctozoom/pkg/geometry"

type Panes struct {
	Full, Zoom geometry.Pane
}

// Layout places n channels in rows, each with the full view on the
// left and the magnified crop on the right. Panes are the frame size
// divided by scale.
func Layout(frame geometry.Frame, scale, n int) (panes []Panes, window geometry.Size) {
	size := geometry.Size{W: frame.W / scale, H: frame.H / scale}
	for i := 0; i < n; i++ {
		y := i * size.H
		panes = append(panes, Panes{
			Full: geometry.Pane{Origin: geometry.Point{Y: y}, Size: size},
			Zoom: geometry.Pane{Origin: geometry.Point{X: size.W, Y: y}, Size: size},
		})
	}
	return panes, geometry.Size{W: 2 * size.W, H: n * size.H}
}
