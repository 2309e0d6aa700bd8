// Package interaction turns pointer and keyboard gestures into crop
// proposals.
//
// Left drag pans, right drag selects a region to zoom into, the wheel
// zooms around the cursor in a zoom pane and the undo key goes back one
// step on the channel under the cursor.
package interaction

import (
	"github.com/voc/voctozoom/pkg/channel"
	"github.com/voc/voctozoom/pkg/crop"
	"github.com/voc/voctozoom/pkg/geometry"
)

type drag struct {
	active bool
	start  geometry.Point
}

// Machine owns the gesture state. It is driven from one goroutine.
type Machine struct {
	channels []*channel.Channel
	zoomIn   crop.Factor

	pan drag
	sel drag
}

func New(channels []*channel.Channel, zoomIn crop.Factor) *Machine {
	return &Machine{channels: channels, zoomIn: zoomIn}
}

// Resolve returns the first active channel with a single pane that
// contains both points.
func Resolve(channels []*channel.Channel, a, b geometry.Point) (int, channel.PaneKind, bool) {
	for i, ch := range channels {
		if !ch.Active() {
			continue
		}
		if kind := ch.PaneAt(a); kind != channel.NoPane && kind == ch.PaneAt(b) {
			return i, kind, true
		}
	}
	return -1, channel.NoPane, false
}

// Dispatch handles one event. It reports whether anything visible
// changed. An error means a channel was dropped or lost a response.
func (m *Machine) Dispatch(ev Event) (redraw bool, err error) {
	switch e := ev.(type) {
	case ButtonDown:
		switch e.Button {
		case Left:
			m.pan = drag{active: true, start: e.Pos}
		case Right:
			m.sel = drag{active: true, start: e.Pos}
		}
	case Motion:
		if m.pan.active {
			r, err := m.panTo(e.Pos)
			redraw = redraw || r
			if err != nil {
				return redraw, err
			}
		}
		if m.sel.active {
			redraw = m.preview(e.Pos) || redraw
		}
	case ButtonUp:
		switch e.Button {
		case Left:
			m.pan = drag{}
		case Right:
			start := m.sel.start
			m.sel = drag{}
			return m.selectDone(start)
		}
	case Wheel:
		return m.zoom(e.Pos, e.Steps)
	case Key:
		ch := m.under(e.Pos)
		if ch == nil {
			return false, nil
		}
		switch e.Action {
		case Undo:
			return ch.Undo()
		case Reset:
			return ch.Propose(ch.Frame().Full())
		}
	}
	return redraw, nil
}

// panTo moves the crop by the pointer movement since the last handled
// motion. Dragging in the full pane moves the crop along, dragging in
// the zoom pane moves the picture, so the crop goes the other way.
func (m *Machine) panTo(pos geometry.Point) (bool, error) {
	i, kind, ok := Resolve(m.channels, m.pan.start, pos)
	if !ok {
		return false, nil
	}
	ch := m.channels[i]
	pane, ref := ch.PaneOf(kind)
	d := geometry.DeltaToFrame(pane.Size, geometry.Point{X: pos.X - m.pan.start.X, Y: pos.Y - m.pan.start.Y}, ref)
	if kind == channel.ZoomPane {
		d = geometry.Point{X: -d.X, Y: -d.Y}
	}
	m.pan.start = pos
	return ch.Propose(crop.Pan(ch.Frame(), ch.Crop(), d))
}

func (m *Machine) preview(pos geometry.Point) bool {
	for _, ch := range m.channels {
		if ch.Active() && ch.PaneAt(m.sel.start) != channel.NoPane {
			ch.SetPreview(geometry.Enclosing(m.sel.start, pos))
			return true
		}
	}
	return false
}

// selectDone turns the selection preview into a crop proposal around
// the drag start. The preview is dropped whatever the source answers.
func (m *Machine) selectDone(start geometry.Point) (redraw bool, err error) {
	for _, ch := range m.channels {
		r, ok := ch.Preview()
		if !ok {
			continue
		}
		ch.ClearPreview()
		redraw = true

		kind := channel.NoPane
		switch {
		case ch.Full.Rect().ContainsRect(r):
			kind = channel.FullPane
		case ch.Zoom.Rect().ContainsRect(r):
			kind = channel.ZoomPane
		}
		if kind == channel.NoPane {
			continue
		}
		pane, ref := ch.PaneOf(kind)
		// start is a corner of the preview, b is the one across
		b := geometry.Point{X: 2*r.X + r.W - start.X, Y: 2*r.Y + r.H - start.Y}
		candidate, ok := crop.RubberBand(ch.Frame(), ref, start, b, pane)
		if !ok {
			continue
		}
		if _, e := ch.Propose(candidate); e != nil && err == nil {
			err = e
		}
	}
	return redraw, err
}

func (m *Machine) zoom(pos geometry.Point, steps int) (bool, error) {
	if steps == 0 {
		return false, nil
	}
	for _, ch := range m.channels {
		if !ch.Active() || !ch.Zoom.Contains(pos) {
			continue
		}
		anchor := geometry.PointToFrame(ch.Zoom, pos, ch.Crop())
		f := m.zoomIn
		if steps < 0 {
			f = f.Inverse()
		}
		return ch.Propose(crop.Zoom(ch.Frame(), ch.Crop(), anchor, f))
	}
	return false, nil
}

func (m *Machine) under(pos geometry.Point) *channel.Channel {
	for _, ch := range m.channels {
		if ch.Active() && ch.PaneAt(pos) != channel.NoPane {
			return ch
		}
	}
	return nil
}
