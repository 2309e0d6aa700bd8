package geometry

// Pane is a fixed display region. The full pane always uses the whole
// frame as its reference window, the zoom pane uses the current crop.
type Pane struct {
	Origin Point
	Size   Size
}

func (p Pane) Rect() Rect {
	return Rect{X: p.Origin.X, Y: p.Origin.Y, W: p.Size.W, H: p.Size.H}
}

func (p Pane) Contains(pt Point) bool { return p.Rect().Contains(pt) }

// PointToFrame maps a display point inside the pane to frame space
// using ref as the frame window the pane currently shows.
func PointToFrame(pane Pane, pt Point, ref Rect) Point {
	return Point{
		X: ref.X + (pt.X-pane.Origin.X)*ref.W/pane.Size.W,
		Y: ref.Y + (pt.Y-pane.Origin.Y)*ref.H/pane.Size.H,
	}
}

// DeltaToFrame maps a display movement to a frame movement.
func DeltaToFrame(size Size, d Point, ref Rect) Point {
	return Point{X: d.X * ref.W / size.W, Y: d.Y * ref.H / size.H}
}

// FrameToPane maps a frame rectangle into display space of a pane that
// shows the whole frame. With a pane half the frame size it halves the
// crop and offsets it by the pane origin.
func FrameToPane(pane Pane, frame Frame, r Rect) Rect {
	return Rect{
		X: pane.Origin.X + r.X*pane.Size.W/frame.W,
		Y: pane.Origin.Y + r.Y*pane.Size.H/frame.H,
		W: r.W * pane.Size.W / frame.W,
		H: r.H * pane.Size.H / frame.H,
	}
}
