// Package crop turns operator gestures into candidate crop rectangles.
// Nothing here talks to the network: a candidate only becomes the
// channel crop after the remote source has confirmed it.
package crop

import (
	"math"

	"github.com/voc/voctozoom/pkg/geometry"
)

type Rect = geometry.Rect

// Factor is a rational zoom step, Num/Den < 1 zooms in.
type Factor struct{ Num, Den int }

// FactorOf converts a decimal zoom step such as 0.9 to a Factor with
// permille precision.
func FactorOf(step float64) Factor {
	return Factor{Num: int(math.Round(step * 1000)), Den: 1000}
}

// Inverse is the reciprocal factor, zooming the other way.
func (f Factor) Inverse() Factor { return Factor{Num: f.Den, Den: f.Num} }

func (f Factor) Valid() bool { return f.Num > 0 && f.Den > 0 && f.Num != f.Den }

func (f Factor) scale(v int) int { return v * f.Num / f.Den }

// Clamp translates r so that it lies inside the frame. It never
// resizes, r is expected to be no larger than the frame.
func Clamp(frame geometry.Frame, r Rect) Rect {
	if r.X+r.W > frame.W {
		r.X = frame.W - r.W
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y+r.H > frame.H {
		r.Y = frame.H - r.H
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// Pan moves the crop by a frame-space delta.
func Pan(frame geometry.Frame, cur Rect, d geometry.Point) Rect {
	cur.X += d.X
	cur.Y += d.Y
	return Clamp(frame, cur)
}

// Zoom scales the crop by f and centers it on anchor. Zooming out to
// or past the frame size snaps to the full frame, zooming in below the
// aspect unit of the frame leaves the crop as is.
func Zoom(frame geometry.Frame, cur Rect, anchor geometry.Point, f Factor) Rect {
	w, h := f.scale(cur.W), f.scale(cur.H)
	if w >= frame.W || h >= frame.H {
		return frame.Full()
	}
	unit := frame.Aspect()
	if w < unit.W || h < unit.H {
		return cur
	}
	return Clamp(frame, Rect{X: anchor.X - w/2, Y: anchor.Y - h/2, W: w, H: h})
}

// RubberBand derives a crop from a selection drag inside pane, which
// currently shows ref. The drag starts at a and ends at b.
//
// The crop is centered on a and mirrors the drag around it, so b lies
// on its boundary and the crop spans twice the drag in each axis. It is
// then grown to the smallest size with exactly the frame's aspect ratio
// that still covers the mirrored drag. It returns false for a drag
// without extent.
func RubberBand(frame geometry.Frame, ref Rect, a, b geometry.Point, pane geometry.Pane) (Rect, bool) {
	fa := geometry.PointToFrame(pane, a, ref)
	fb := geometry.PointToFrame(pane, b, ref)

	w := 2 * abs(fa.X-fb.X)
	h := 2 * abs(fa.Y-fb.Y)

	unit := frame.Aspect()
	if unit.W == 0 || unit.H == 0 {
		return Rect{}, false
	}
	k := max(ceilDiv(w, unit.W), ceilDiv(h, unit.H))
	if k == 0 {
		return Rect{}, false
	}
	w, h = k*unit.W, k*unit.H
	if w >= frame.W || h >= frame.H {
		return frame.Full(), true
	}
	return Clamp(frame, Rect{X: fa.X - w/2, Y: fa.Y - h/2, W: w, H: h}), true
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
